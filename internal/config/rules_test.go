package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRulesMissingFile(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "rules.toml"))
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules.SecretPatterns) != 0 || len(rules.ImpactWeights) != 0 {
		t.Errorf("missing file should yield empty rules, got %+v", rules)
	}
}

func TestLoadRules(t *testing.T) {
	content := `
[[secret_pattern]]
name = "internal_hostname"
category = "Security"
level = "blocking"
regex = 'corp\.internal'
message = "Internal hostname in source"
suggestion = "Use service discovery"

[[impact_weight]]
keyword = "vendor"
weight = 12

[[impact_weight]]
keyword = "infra"
weight = 7
`
	path := filepath.Join(t.TempDir(), "rules.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}

	if len(rules.SecretPatterns) != 1 {
		t.Fatalf("SecretPatterns = %d, want 1", len(rules.SecretPatterns))
	}
	p := rules.SecretPatterns[0]
	if p.Name != "internal_hostname" || p.Level != "blocking" || p.Regex != `corp\.internal` {
		t.Errorf("pattern = %+v", p)
	}

	if len(rules.ImpactWeights) != 2 {
		t.Fatalf("ImpactWeights = %d, want 2", len(rules.ImpactWeights))
	}
	if rules.ImpactWeights[0].Keyword != "vendor" || rules.ImpactWeights[0].Weight != 12 {
		t.Errorf("first weight = %+v", rules.ImpactWeights[0])
	}
	if rules.ImpactWeights[1].Keyword != "infra" {
		t.Errorf("rules order not preserved: %+v", rules.ImpactWeights)
	}
}

func TestLoadRulesMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	if err := os.WriteFile(path, []byte("[[secret_pattern]\nname ="), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRules(path); err == nil {
		t.Error("malformed rules file must be an error")
	}
}
