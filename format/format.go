package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
	MsgPackFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"j":       JSONFormat,
		"json":    JSONFormat,
		"y":       YAMLFormat,
		"yaml":    YAMLFormat,
		"yml":     YAMLFormat,
		"m":       MsgPackFormat,
		"mp":      MsgPackFormat,
		"msgpack": MsgPackFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case MsgPackFormat:
		return []byte("msgpack"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool    { return f == JSONFormat }
func (f Format) IsYAML() bool    { return f == YAMLFormat }
func (f Format) IsMsgPack() bool { return f == MsgPackFormat }

// IsText reports whether documents in this format are text.
func (f Format) IsText() bool { return f != MsgPackFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case MsgPackFormat:
		return ".msgpack"
	default:
		return ""
	}
}

// FromSuffix returns the format whose files have the extension suffix,
// which may be given with or without the dot.
func FromSuffix(suffix string) (Format, error) {
	switch suffix {
	case ".json", "json":
		return JSONFormat, nil
	case ".yaml", "yaml", ".yml", "yml":
		return YAMLFormat, nil
	case ".msgpack", "msgpack", ".mp", "mp":
		return MsgPackFormat, nil
	}
	return 0, fmt.Errorf("%w: no format for suffix %q", ErrBadFormat, suffix)
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{JSONFormat, YAMLFormat, MsgPackFormat}
}
