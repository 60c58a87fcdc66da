package config

import "testing"

func TestResolveBaseURL_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://env.example:9000")

	got, err := ResolveBaseURL("http://flag.example:7000/")
	if err != nil {
		t.Fatal(err)
	}
	if got != "http://flag.example:7000" {
		t.Fatalf("unexpected base URL: %q", got)
	}
}

func TestResolveBaseURL_EnvBeatsDefault(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://api.example/api/v1/")

	got, err := ResolveBaseURL("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://api.example/api/v1" {
		t.Fatalf("unexpected base URL: %q", got)
	}
}

func TestResolveBaseURL_DefaultWhenUnset(t *testing.T) {
	t.Setenv(EnvBaseURL, "")

	got, err := ResolveBaseURL("")
	if err != nil {
		t.Fatal(err)
	}
	if got != DefaultBaseURL {
		t.Fatalf("unexpected base URL: %q want default %q", got, DefaultBaseURL)
	}
}

func TestNormalizeBaseURL_RejectsBadInputs(t *testing.T) {
	cases := []string{
		"   ",
		"ftp://example.com",
		"localhost:8000",
		"http://",
	}

	for _, raw := range cases {
		if _, err := NormalizeBaseURL(raw); err == nil {
			t.Fatalf("expected error for base URL %q", raw)
		}
	}
}
