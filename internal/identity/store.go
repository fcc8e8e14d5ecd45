// Package identity connects the hosted identity provider to the API client:
// it signs the user in, keeps the token on disk, and supplies bearer tokens
// to apiclient through a TokenProvider.
package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// ErrNotLoggedIn is returned by Store.Load when no token has been saved.
var ErrNotLoggedIn = errors.New("not logged in")

// storedToken keeps the ID token alongside the oauth2 fields, which
// oauth2.Token alone does not serialize.
type storedToken struct {
	*oauth2.Token
	IDToken string `json:"id_token,omitempty"`
}

// Store reads and writes a token file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the saved token, or ErrNotLoggedIn.
func (s *Store) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}

	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if st.Token == nil || (st.AccessToken == "" && st.IDToken == "") {
		return nil, fmt.Errorf("parsing %s: no token", s.path)
	}

	tok := st.Token
	if st.IDToken != "" {
		tok = tok.WithExtra(map[string]any{"id_token": st.IDToken})
	}
	return tok, nil
}

// Save writes tok with mode 0600, creating the parent directory if needed.
func (s *Store) Save(tok *oauth2.Token) error {
	st := storedToken{Token: tok, IDToken: IDToken(tok)}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Remove deletes the token file. A missing file is not an error.
func (s *Store) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// IDToken returns the id_token extra of tok, if any.
func IDToken(tok *oauth2.Token) string {
	if tok == nil {
		return ""
	}
	id, _ := tok.Extra("id_token").(string)
	return id
}

// BearerToken is the credential the backends expect: the ID token when the
// provider issued one, else the access token.
func BearerToken(tok *oauth2.Token) string {
	if id := IDToken(tok); id != "" {
		return id
	}
	if tok == nil {
		return ""
	}
	return tok.AccessToken
}
