package configlang

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rhino1998/configlang/pkg/codec"
	"github.com/rhino1998/configlang/pkg/interpreter"
	"github.com/rhino1998/configlang/pkg/kinds"
	"github.com/rhino1998/configlang/pkg/parser"
)

// ConfigLang is one interpreter instance and the variables it owns. It is not
// safe for concurrent use; hosts sharing an instance must serialize access.
type ConfigLang struct {
	logger *slog.Logger
	Config Config

	store   *interpreter.Store
	lastErr ErrorDescriptor
}

func New(logger *slog.Logger, config Config) (*ConfigLang, error) {
	if logger == nil {
		logger = slog.Default()
	}

	err := config.Validate(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	return &ConfigLang{
		logger:  logger,
		Config:  config,
		store:   interpreter.NewStore(config.MaxVariables),
		lastErr: noError,
	}, nil
}

func (c *ConfigLang) fail(err error) error {
	c.lastErr = describe(err)
	c.logger.Debug("operation failed", "code", c.lastErr.Code, "err", err)

	return err
}

// LastError describes the most recent failed operation. Successful calls do
// not reset it.
func (c *ConfigLang) LastError() ErrorDescriptor {
	return c.lastErr
}

// LoadString executes src against the instance's variables. On failure the
// variables keep every change made before the failing statement.
func (c *ConfigLang) LoadString(src string) error {
	return c.load("", src)
}

func (c *ConfigLang) LoadReader(name string, r io.Reader) error {
	if r == nil {
		return c.fail(ErrNullArgument)
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return c.fail(FileError{File: name, Err: err})
	}

	return c.load(name, string(src))
}

func (c *ConfigLang) LoadFile(path string) error {
	if path == "" {
		return c.fail(ErrNullArgument)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return c.fail(FileError{File: path, Err: err})
	}

	return c.load(path, string(src))
}

func (c *ConfigLang) load(name string, src string) error {
	lex := parser.NewLexer(name, src, c.Config.Limits())

	err := interpreter.Execute(c.logger, c.store, lex, c.Config.options())
	if err != nil {
		return c.fail(err)
	}

	c.logger.Debug("loaded source", "name", name, "variables", c.store.Len())

	return nil
}

func (c *ConfigLang) lookup(name string) (*interpreter.Variable, error) {
	if name == "" {
		return nil, ErrNullArgument
	}

	v, ok := c.store.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", interpreter.ErrVariableNotFound, name)
	}

	return v, nil
}

func (c *ConfigLang) Int(name string) (int64, error) {
	v, err := c.lookup(name)
	if err != nil {
		return 0, c.fail(err)
	}

	n, ok := v.Value().AsInt()
	if !ok {
		return 0, c.fail(fmt.Errorf("%w: %q is %s, not int", interpreter.ErrTypeMismatch, name, v.Kind()))
	}

	return n, nil
}

func (c *ConfigLang) Text(name string) (string, error) {
	v, err := c.lookup(name)
	if err != nil {
		return "", c.fail(err)
	}

	s, ok := v.Value().AsString()
	if !ok {
		return "", c.fail(fmt.Errorf("%w: %q is %s, not string", interpreter.ErrTypeMismatch, name, v.Kind()))
	}

	return s, nil
}

func (c *ConfigLang) SetInt(name string, n int64) error {
	if name == "" {
		return c.fail(ErrNullArgument)
	}

	err := c.store.SetInt(name, n)
	if err != nil {
		return c.fail(err)
	}

	return nil
}

func (c *ConfigLang) Kind(name string) (kinds.Kind, error) {
	v, err := c.lookup(name)
	if err != nil {
		return kinds.Unknown, c.fail(err)
	}

	return v.Kind(), nil
}

func (c *ConfigLang) IsConst(name string) (bool, error) {
	v, err := c.lookup(name)
	if err != nil {
		return false, c.fail(err)
	}

	return v.Immutable(), nil
}

// Names lists the defined variables in creation order.
func (c *ConfigLang) Names() []string {
	vars := c.store.Variables()

	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name())
	}

	return names
}

func (c *ConfigLang) Len() int {
	return c.store.Len()
}

func (c *ConfigLang) WriteTo(w io.Writer) (int64, error) {
	n, err := codec.Marshal(w, c.store)
	if err != nil {
		return n, c.fail(err)
	}

	return n, nil
}

// Serialize renders the variables as program text that LoadString accepts.
func (c *ConfigLang) Serialize() string {
	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	// Unreachable for loaded values: a lexed string cannot hold %%%# together
	// with a newline or quote. Only hand-built stores can fail here.
	if err != nil {
		c.logger.Warn("failed to serialize variables", "err", err)
	}

	return buf.String()
}

func (c *ConfigLang) SaveFile(path string) error {
	if path == "" {
		return c.fail(ErrNullArgument)
	}

	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, buf.Bytes(), 0o644)
	if err != nil {
		return c.fail(FileError{File: path, Err: err})
	}

	return nil
}

// CheckFiles loads each file into a fresh instance and collects every
// failure.
func CheckFiles(logger *slog.Logger, config Config, paths ...string) error {
	errs := newErrorSet()

	for _, path := range paths {
		cfg, err := New(logger, config)
		if err != nil {
			return err
		}

		errs.Add(cfg.LoadFile(path))
	}

	return errs.Err()
}
