package config

import (
	"reflect"
	"testing"
	"time"
)

func TestGetters(t *testing.T) {
	env := map[string]string{
		"PORT":           " 8080 ",
		"EMPTY":          "",
		"SECURE_COOKIES": "true",
		"BAD_BOOL":       "sometimes",
		"READ_TIMEOUT":   "15",
		"ADMIN_EMAILS":   "owner@example.com, ,  office@example.com,",
	}

	if got := GetInt(env, "PORT", 80); got != 8080 {
		t.Errorf("GetInt(PORT) = %d", got)
	}
	if got := GetInt(env, "MISSING", 80); got != 80 {
		t.Errorf("GetInt(MISSING) = %d", got)
	}
	if got := GetString(env, "EMPTY", "fallback"); got != "fallback" {
		t.Errorf("GetString(EMPTY) = %q", got)
	}
	if got := GetString(nil, "PORT", "fallback"); got != "fallback" {
		t.Errorf("GetString(nil map) = %q", got)
	}
	if !GetBool(env, "SECURE_COOKIES", false) || !GetBool(env, "BAD_BOOL", true) {
		t.Error("GetBool returned the wrong value")
	}
	if got := GetSeconds(env, "READ_TIMEOUT", 5); got != 15*time.Second {
		t.Errorf("GetSeconds(READ_TIMEOUT) = %v", got)
	}

	want := []string{"owner@example.com", "office@example.com"}
	if got := GetStrings(env, "ADMIN_EMAILS"); !reflect.DeepEqual(got, want) {
		t.Errorf("GetStrings(ADMIN_EMAILS) = %v, want %v", got, want)
	}
	if got := GetStrings(env, "MISSING"); got != nil {
		t.Errorf("GetStrings(MISSING) = %v, want nil", got)
	}
}

func TestSplit(t *testing.T) {
	key, value := split("DATABASE_URL=postgres://u:p@h/db?sslmode=require&a=b")
	if key != "DATABASE_URL" || value != "postgres://u:p@h/db?sslmode=require&a=b" {
		t.Errorf("split() = %q, %q", key, value)
	}
	if key, value := split("NOVALUE"); key != "NOVALUE" || value != "" {
		t.Errorf("split(NOVALUE) = %q, %q", key, value)
	}
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("SITE_NAME", "Tru-Est Construction")
	if got := GetString(New(), "SITE_NAME", ""); got != "Tru-Est Construction" {
		t.Errorf("New()[SITE_NAME] = %q", got)
	}
}
