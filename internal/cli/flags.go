package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/spf13/pflag"
)

// shutterTypeValue is a pflag.Value accepting "high" or "low".
type shutterTypeValue struct {
	v *domain.ShutterType
}

var _ pflag.Value = shutterTypeValue{}

func newShutterTypeValue(def domain.ShutterType, p *domain.ShutterType) shutterTypeValue {
	*p = def
	return shutterTypeValue{v: p}
}

func (s shutterTypeValue) String() string {
	if s.v == nil {
		return ""
	}
	return string(*s.v)
}

func (s shutterTypeValue) Set(raw string) error {
	t, err := domain.ParseShutterType(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return err
	}
	*s.v = t
	return nil
}

func (shutterTypeValue) Type() string { return "high|low" }

// dateValue is a pflag.Value for an optional YYYY-MM-DD date.
type dateValue struct {
	v **time.Time
}

var _ pflag.Value = dateValue{}

func (d dateValue) String() string {
	if d.v == nil || *d.v == nil {
		return ""
	}
	return (*d.v).Format("2006-01-02")
}

func (d dateValue) Set(raw string) error {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	*d.v = &t
	return nil
}

func (dateValue) Type() string { return "date" }

// changed reports whether any of the named flags was set on the command line.
func changed(fs *pflag.FlagSet, names ...string) bool {
	for _, n := range names {
		if fs.Changed(n) {
			return true
		}
	}
	return false
}
