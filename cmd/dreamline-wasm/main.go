//go:build js && wasm

// Command dreamline-wasm binds the dream form controller to the browser page
// served by "dreamline serve". The page must contain #dream-form (with a
// "dream" field), #result and #interpret-btn.
package main

import (
	"context"
	"errors"
	"html"
	"strings"
	"syscall/js"
	"time"

	"go.uber.org/zap"

	"github.com/five82/dreamline/internal/form"
	"github.com/five82/dreamline/internal/interpret"
	"github.com/five82/dreamline/internal/logging"
)

const (
	requestTimeout = 15 * time.Second
	loaderHTML     = `<div class="loader" role="status" aria-live="polite"><span></span><span></span><span></span></div>`
)

func main() {
	logger, err := logging.New(logging.Config{Level: "info", Encoding: "console", OutputPath: "stderr"})
	if err != nil {
		js.Global().Get("console").Call("error", "dreamline: "+err.Error())
		return
	}

	doc := js.Global().Get("document")
	formEl := doc.Call("getElementById", "dream-form")
	resultEl := doc.Call("getElementById", "result")
	buttonEl := doc.Call("getElementById", "interpret-btn")
	if isMissing(formEl) || isMissing(resultEl) || isMissing(buttonEl) {
		logger.Error("page is missing #dream-form, #result or #interpret-btn")
		return
	}

	client, err := interpret.NewClient(apiURL(formEl), interpret.WithTimeout(requestTimeout))
	if err != nil {
		logger.Error("init interpret client", zap.Error(err))
		return
	}

	ctrl, err := form.NewController(client, domDisplay{el: resultEl}, domTrigger{el: buttonEl},
		form.WithLogger(logger),
		form.WithTimeout(requestTimeout),
	)
	if err != nil {
		logger.Error("init form controller", zap.Error(err))
		return
	}

	formEl.Call("addEventListener", "submit", js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		args[0].Call("preventDefault")
		dream := ""
		if v := js.Global().Get("FormData").New(formEl).Call("get", "dream"); v.Type() == js.TypeString {
			dream = v.String()
		}
		// Submit blocks on fetch; it must not run on the event callback.
		go func() {
			if _, err := ctrl.Submit(context.Background(), dream); errors.Is(err, form.ErrBusy) {
				logger.Debug("submission ignored while busy")
			}
		}()
		return nil
	}))

	logger.Info("dreamline form ready", zap.String("api_url", client.BaseURL()))
	select {}
}

// apiURL prefers the form's data-api attribute and falls back to the page
// origin.
func apiURL(formEl js.Value) string {
	if v := formEl.Call("getAttribute", "data-api"); v.Type() == js.TypeString && strings.TrimSpace(v.String()) != "" {
		return v.String()
	}
	return js.Global().Get("location").Get("origin").String()
}

func isMissing(v js.Value) bool {
	return v.IsNull() || v.IsUndefined()
}

// domDisplay renders into the result element.
type domDisplay struct {
	el js.Value
}

func (d domDisplay) ShowLoading() {
	d.el.Set("innerHTML", loaderHTML)
}

// ShowMessage escapes text and keeps its line breaks.
func (d domDisplay) ShowMessage(text string) {
	escaped := strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
	d.el.Set("innerHTML", "<p>"+escaped+"</p>")
}

// domTrigger drives the submit button.
type domTrigger struct {
	el js.Value
}

func (t domTrigger) SetEnabled(enabled bool) {
	t.el.Set("disabled", !enabled)
}

func (t domTrigger) SetLabel(label string) {
	t.el.Set("textContent", label)
}
