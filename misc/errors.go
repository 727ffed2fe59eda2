package misc

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
)

const (
	Fatal Severity = iota
	Error
	Warning
	Info
	Debug
)

type Severity int

func (s Severity) String() string {
	if s < Fatal || s > Debug {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return []string{
		"Fatal", "Error", "Warning", "Info", "Debug",
	}[s]
}

// CheckError logs err at the given severity and reports whether there was an error. Fatal exits the program.
func CheckError(err error, logger bslogger.Logger, severity Severity) bool {
	if err == nil {
		return false
	}

	switch severity {
	case Fatal:
		logger.Fatal(err.Error())
	case Error:
		logger.Error(err.Error())
	case Warning:
		logger.Warning(err.Error())
	case Info:
		logger.Info(err.Error())
	case Debug:
		logger.Debug(err.Error())
	default:
		logger.Fatal(err.Error())
	}
	return true
}

// Nothing is the empty request or reply of an rpc call.
type Nothing struct{}
