package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/opcuakit/uacodec/ua"
	"github.com/opcuakit/uacodec/utils"
)

// converter turns one encoded message file into another wire format.
// Every file gets a fresh EncodingContext so namespace tables picked up
// while decoding one message never leak into the next.
type converter struct {
	in, out      ua.Format
	encodeOpts   []ua.EncodeOption
	limits       ua.EncodingLimits
	appNamespace string
}

func newConverter(cfg *utils.Config) (*converter, error) {
	in, err := parseFormat(cfg.InputFormat)
	if err != nil {
		return nil, err
	}
	out, err := parseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	c := &converter{
		in:  in,
		out: out,
		limits: ua.EncodingLimits{
			MaxStringLength:     cfg.MaxStringLength,
			MaxByteStringLength: cfg.MaxByteStringLength,
			MaxArrayLength:      cfg.MaxArrayLength,
			MaxRecursionDepth:   cfg.MaxRecursionDepth,
		},
		appNamespace: cfg.ApplicationNamespace,
	}
	if out == ua.FormatJSON {
		v, err := parseJSONVariant(cfg.JSONVariant)
		if err != nil {
			return nil, err
		}
		c.encodeOpts = append(c.encodeOpts, ua.WithJSONVariant(v))
	}
	return c, nil
}

func parseFormat(s string) (ua.Format, error) {
	switch strings.ToLower(s) {
	case "binary", "bin":
		return ua.FormatBinary, nil
	case "xml":
		return ua.FormatXML, nil
	case "json":
		return ua.FormatJSON, nil
	default:
		return 0, errors.Errorf("unknown format %q (want binary, xml or json)", s)
	}
}

func parseJSONVariant(s string) (ua.JSONVariant, error) {
	switch strings.ToLower(s) {
	case "", "reversible":
		return ua.JSONReversible, nil
	case "nonreversible", "non-reversible":
		return ua.JSONNonReversible, nil
	case "compact":
		return ua.JSONCompact, nil
	case "verbose":
		return ua.JSONVerbose, nil
	default:
		return 0, errors.Errorf("unknown JSON variant %q", s)
	}
}

// extension returns the output file suffix for the target format.
func (c *converter) extension() string {
	switch c.out {
	case ua.FormatXML:
		return ".xml"
	case ua.FormatJSON:
		return ".json"
	default:
		return ".bin"
	}
}

// convertFile decodes src under the input format and writes the
// re-encoded message into dstDir, keeping the base file name.
func (c *converter) convertFile(src, dstDir string) (string, error) {
	b, err := os.ReadFile(src)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", src)
	}
	ec := ua.NewEncodingContext()
	ec.SetLimits(c.limits)
	if c.appNamespace != "" {
		ec.SetApplicationNamespace(c.appNamespace)
	}
	msg, err := ua.Decode(b, ec, c.in)
	if err != nil {
		return "", errors.Wrapf(err, "decode %s as %s", src, c.in)
	}
	out, err := ua.Encode(msg, ec, c.out, c.encodeOpts...)
	if err != nil {
		return "", errors.Wrapf(err, "re-encode %s as %s", src, c.out)
	}
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	dst := filepath.Join(dstDir, base+c.extension())
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return "", errors.Wrapf(err, "write %s", dst)
	}
	return dst, nil
}
