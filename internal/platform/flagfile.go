package platform

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"bleio-go/errcode"
	"bleio-go/x/conv"
)

// FlagFile keeps a retained-register style flag in a file so it survives a
// process restart on hosts without one.
type FlagFile struct {
	Path string
}

// Flag reads the stored value; a missing file reads as zero.
func (f FlagFile) Flag() (uint32, error) {
	raw, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, errcode.Wrap(errcode.Hardware, "flag.read", err)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 32)
	if err != nil {
		return 0, errcode.Wrap(errcode.Hardware, "flag.read", err)
	}
	return uint32(v), nil
}

// SetPersistentFlag ORs mask into the stored value.
func (f FlagFile) SetPersistentFlag(mask uint32) error {
	cur, err := f.Flag()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return errcode.Wrap(errcode.Hardware, "flag.write", err)
	}
	b := conv.AppendUint(nil, uint64(cur|mask))
	b = append(b, '\n')
	if err := os.WriteFile(f.Path, b, 0o644); err != nil {
		return errcode.Wrap(errcode.Hardware, "flag.write", err)
	}
	return nil
}

// Clear removes the stored flag.
func (f FlagFile) Clear() error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return errcode.Wrap(errcode.Hardware, "flag.clear", err)
	}
	return nil
}
