package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/imamik/kubelab/internal/envplan"
)

// Dollar signs are left alone so ${VAR} placeholders expand when the file
// is sourced.
var envEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "\n", `\n`)

// WriteEnv writes env as KEY="value" lines in insertion order.
func WriteEnv(w io.Writer, env envplan.Env) error {
	for k, v := range env.All() {
		if _, err := fmt.Fprintf(w, "%s=\"%s\"\n", k, envEscaper.Replace(v)); err != nil {
			return fmt.Errorf("failed to write %s: %w", k, err)
		}
	}
	return nil
}

// EnvFile returns the contents of an environment file.
func EnvFile(env envplan.Env) []byte {
	var buf bytes.Buffer
	_ = WriteEnv(&buf, env)
	return buf.Bytes()
}
