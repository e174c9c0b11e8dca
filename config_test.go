package belka

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InputFile != "data/statement.xlsx" {
		t.Errorf("input file = %q", cfg.InputFile)
	}
	if cfg.NBPArchiveURL != DefaultNBPArchiveURL {
		t.Errorf("archive url = %q", cfg.NBPArchiveURL)
	}
	if !cfg.BelkaRate.Equal(DefaultBelkaRate) {
		t.Errorf("rate = %s", cfg.BelkaRate)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("BELKA_INPUT_FILE", "statements/march.xlsx")
	t.Setenv("BELKA_TAX_RATE", "0.20")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InputFile != "statements/march.xlsx" {
		t.Errorf("input file = %q", cfg.InputFile)
	}
	if cfg.BelkaRate.String() != "0.2" {
		t.Errorf("rate = %s", cfg.BelkaRate)
	}
}

func TestLoadConfigRejectsBadRate(t *testing.T) {
	for _, rate := range []string{"abc", "-0.1", "19"} {
		t.Setenv("BELKA_TAX_RATE", rate)
		if _, err := LoadConfig(); err == nil {
			t.Errorf("BELKA_TAX_RATE=%q accepted, want error", rate)
		}
	}
}
