// Package battery reads the charge level of the system battery.
package battery

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/esimov/batticon/utils"
	"github.com/pkg/errors"
)

// DefaultSysfsRoot is where Linux exposes its power supplies.
const DefaultSysfsRoot = "/sys/class/power_supply"

// ErrNoBattery is returned when no battery can be found or read.
var ErrNoBattery = errors.New("no battery found")

// Reader reports the current battery percentage, in the [0, 100] range.
type Reader interface {
	Percentage(ctx context.Context) (uint8, error)
}

// Fixed is a Reader always reporting the same percentage.
type Fixed uint8

// Percentage implements Reader.
func (f Fixed) Percentage(context.Context) (uint8, error) {
	return utils.Min(uint8(f), 100), nil
}

// Sysfs reads the capacity attribute of a Linux power supply.
type Sysfs struct {
	Root string // defaults to DefaultSysfsRoot
	Name string // supply name, e.g. BAT0; empty selects the first battery
}

// Percentage implements Reader.
func (s Sysfs) Percentage(ctx context.Context) (uint8, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	name := s.Name
	if name == "" {
		var err error
		if name, err = s.Detect(); err != nil {
			return 0, err
		}
	}

	data, err := os.ReadFile(filepath.Join(s.root(), name, "capacity"))
	if err != nil {
		return 0, errors.Wrapf(ErrNoBattery, "%s: %v", name, err)
	}
	return parseCapacity(data)
}

// Detect returns the name of the first battery power supply, sorted by name.
func (s Sysfs) Detect() (string, error) {
	entries, err := os.ReadDir(s.root())
	if err != nil {
		return "", errors.Wrap(ErrNoBattery, err.Error())
	}

	var names []string
	for _, e := range entries {
		kind, err := os.ReadFile(filepath.Join(s.root(), e.Name(), "type"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(kind)) == "Battery" {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", ErrNoBattery
	}
	sort.Strings(names)

	return names[0], nil
}

func (s Sysfs) root() string {
	if s.Root == "" {
		return DefaultSysfsRoot
	}
	return s.Root
}

// parseCapacity parses a capacity value, clamping it to [0, 100].
func parseCapacity(data []byte) (uint8, error) {
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid capacity %q", strings.TrimSpace(string(data)))
	}
	return uint8(utils.Clamp(v, 0, 100)), nil
}
