package util

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	log "github.com/sirupsen/logrus"
)

// maxJsonFileSize bounds config and result files read by the migrator
const maxJsonFileSize = 1024 * 1024

// WriteJson stores obj as indented JSON in file. Parent folders are created and the content
// is written to a temp file in the same folder first, so readers never see a partial file.
func WriteJson(ctx context.Context, file string, obj interface{}) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}

	bs, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", file, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(file)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err := os.Remove(tmpName); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warnf("failed to remove temp file %s: %v", tmpName, err)
		}
	}()

	_, err = tmp.Write(bs)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", tmpName, err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	if err := os.Rename(tmpName, file); err != nil {
		return fmt.Errorf("move %s to %s: %w", tmpName, file, err)
	}
	return nil
}

// ReadJson decodes file into res and returns res
func ReadJson(file string, res interface{}) (interface{}, error) {
	bs, err := readLimited(file)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(bs, &res); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return res, nil
}

// ReadJsonWithEnvSub is ReadJson for config files that reference environment variables
// as {{ .NAME }}. Unset variables expand to an empty string.
func ReadJsonWithEnvSub(file string, res interface{}) (interface{}, error) {
	bs, err := readLimited(file)
	if err != nil {
		return nil, err
	}

	t, err := template.New(filepath.Base(file)).Option("missingkey=zero").Parse(string(bs))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", file, err)
	}

	var expanded bytes.Buffer
	if err := t.Execute(&expanded, environ()); err != nil {
		return nil, fmt.Errorf("expand %s: %w", file, err)
	}

	if err := json.Unmarshal(expanded.Bytes(), &res); err != nil {
		return nil, fmt.Errorf("parse %s after expansion: %w", file, err)
	}
	return res, nil
}

// RemoveJson deletes file; a missing file is not an error
func RemoveJson(file string) error {
	if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", file, err)
	}
	return nil
}

func readLimited(file string) ([]byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bs, err := io.ReadAll(io.LimitReader(f, maxJsonFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	if len(bs) > maxJsonFileSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", file, maxJsonFileSize)
	}
	return bs, nil
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if ok && name != "" {
			env[name] = value
		}
	}
	return env
}
