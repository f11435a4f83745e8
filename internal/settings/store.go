// Package settings is the local key-value configuration of the till. It is
// a single YAML file with these keys:
//
//	whatsapp_phone  remembered destination for report hand-off, E.164
//	inventory       item name -> stock level snapshot
//
// The file is read once at startup and rewritten on every change.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ttacon/libphonenumber"
	"gopkg.in/yaml.v3"
)

var ErrInvalidPhone = errors.New("phone number is not valid")

type Settings struct {
	WhatsAppPhone string         `yaml:"whatsapp_phone,omitempty"`
	Inventory     map[string]int `yaml:"inventory,omitempty"`
}

type Store struct {
	mu     sync.Mutex
	path   string
	region string
	data   Settings
}

// Open loads path. A missing file yields empty settings; the file is
// created on the first write.
func Open(path, region string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("settings path is required")
	}
	s := &Store{path: path, region: strings.ToUpper(strings.TrimSpace(region))}

	body, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(body, &s.data); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) Phone() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.WhatsAppPhone
}

// SetPhone validates raw against the store's region, stores it in E.164 and
// returns the normalised number. An empty value forgets the phone.
func (s *Store) SetPhone(raw string) (string, error) {
	phone := ""
	if strings.TrimSpace(raw) != "" {
		normalized, err := NormalizePhone(raw, s.region)
		if err != nil {
			return "", err
		}
		phone = normalized
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.data
	next.WhatsAppPhone = phone
	if err := s.write(next); err != nil {
		return "", err
	}
	s.data = next
	return phone, nil
}

func (s *Store) Inventory() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.data.Inventory))
	for name, level := range s.data.Inventory {
		out[name] = level
	}
	return out
}

func (s *Store) SaveInventory(levels map[string]int) error {
	snapshot := make(map[string]int, len(levels))
	for name, level := range levels {
		snapshot[name] = level
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.data
	next.Inventory = snapshot
	if err := s.write(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *Store) write(data Settings) error {
	body, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace settings %s: %w", s.path, err)
	}
	return nil
}

func NormalizePhone(raw, region string) (string, error) {
	number, err := libphonenumber.Parse(strings.TrimSpace(raw), region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	if !libphonenumber.IsValidNumber(number) {
		return "", ErrInvalidPhone
	}
	return libphonenumber.Format(number, libphonenumber.E164), nil
}
