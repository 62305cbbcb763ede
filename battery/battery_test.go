package battery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSupply(t *testing.T, root, name, kind, capacity string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "type"), []byte(kind+"\n"), 0644))
	if capacity != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "capacity"), []byte(capacity+"\n"), 0644))
	}
}

func TestBattery_Fixed(t *testing.T) {
	p, err := Fixed(42).Percentage(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint8(42), p)

	p, err = Fixed(230).Percentage(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint8(100), p)
}

func TestBattery_SysfsDetect(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()

	makeSupply(t, root, "AC", "Mains", "")
	makeSupply(t, root, "BAT1", "Battery", "64")
	makeSupply(t, root, "BAT0", "Battery", "87")

	s := Sysfs{Root: root}
	name, err := s.Detect()
	assert.NoError(err)
	assert.Equal("BAT0", name)

	p, err := s.Percentage(context.Background())
	assert.NoError(err)
	assert.Equal(uint8(87), p)

	p, err = Sysfs{Root: root, Name: "BAT1"}.Percentage(context.Background())
	assert.NoError(err)
	assert.Equal(uint8(64), p)
}

func TestBattery_SysfsErrors(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()

	_, err := Sysfs{Root: root}.Percentage(context.Background())
	assert.ErrorIs(err, ErrNoBattery)

	_, err = Sysfs{Root: filepath.Join(root, "missing")}.Detect()
	assert.ErrorIs(err, ErrNoBattery)

	_, err = Sysfs{Root: root, Name: "BAT9"}.Percentage(context.Background())
	assert.ErrorIs(err, ErrNoBattery)

	makeSupply(t, root, "BAT0", "Battery", "lots")
	_, err = Sysfs{Root: root}.Percentage(context.Background())
	assert.Error(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Sysfs{Root: root}.Percentage(ctx)
	assert.ErrorIs(err, context.Canceled)
}

func TestBattery_ParseCapacity(t *testing.T) {
	p, err := parseCapacity([]byte("101\n"))
	assert.NoError(t, err)
	assert.Equal(t, uint8(100), p)

	p, err = parseCapacity([]byte("-3"))
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), p)
}
