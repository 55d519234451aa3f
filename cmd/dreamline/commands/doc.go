// Package commands defines the dreamline CLI.
//
// Commands
//
//   - dreamline          Open the terminal form (default)
//   - dreamline ask      Interpret one dream given as arguments and print it
//   - dreamline serve    Run the interpretation HTTP service
//
// --config and --prefs are persistent and apply to every command. ask exits
// non-zero when the dream was blank or the service could not be reached; the
// message the form would have shown is still printed.
package commands
