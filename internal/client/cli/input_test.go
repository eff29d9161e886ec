package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("a@b.com\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Email", &out)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", got)
	require.Contains(t, out.String(), "Email")
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Email", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)
}

func TestGetSecretError(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}

	var out bytes.Buffer
	_, err := GetSecret("Password", &out)
	require.Error(t, err)
}

func TestGetSecretStub(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("Abcdef1!"), nil
	}

	var out bytes.Buffer
	got, err := GetSecret("Password", &out)
	require.NoError(t, err)
	require.Equal(t, "Abcdef1!", got)
	require.Contains(t, out.String(), "Password: ")
}
