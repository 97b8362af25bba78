/*
File    : drython/script/script.go
Author  : Drython Contributors
Contact : dryscript/drython
*/

// Package script holds the file-reading host collaborator: the primitive a
// CLI or embedder uses to load a script's source text before handing it to
// parser.Parse. Drython scripts themselves have no file builtins, so this
// stays a host-side concern.
package script

import "os"

// ReadText reads the full contents of the file at path as UTF-8 text.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
