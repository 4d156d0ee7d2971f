package sqlite

import "testing"

func TestPreferencesRoundTrip(t *testing.T) {
	s, ctx := mustNewStore(t)
	userID := mustCreateUser(t, s, ctx, "alice")

	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		t.Fatalf("GetPreferences error: %v", err)
	}
	if len(prefs) != 0 {
		t.Errorf("fresh user has preferences: %v", prefs)
	}

	err = s.SavePreferences(ctx, userID, map[string]string{
		"theme":                "dark",
		"font_size":            "14",
		"enable_notifications": "True",
		"seen_welcome_message": "True",
	})
	if err != nil {
		t.Fatalf("SavePreferences error: %v", err)
	}

	prefs, err = s.GetPreferences(ctx, userID)
	if err != nil {
		t.Fatalf("GetPreferences error: %v", err)
	}
	if prefs["theme"] != "dark" || prefs["font_size"] != "14" {
		t.Errorf("prefs = %v", prefs)
	}
}

func TestPreferencesUpsert(t *testing.T) {
	s, ctx := mustNewStore(t)
	userID := mustCreateUser(t, s, ctx, "alice")

	if err := s.SavePreferences(ctx, userID, map[string]string{"theme": "dark"}); err != nil {
		t.Fatalf("SavePreferences error: %v", err)
	}
	if err := s.SavePreferences(ctx, userID, map[string]string{"theme": "light"}); err != nil {
		t.Fatalf("SavePreferences error: %v", err)
	}

	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		t.Fatalf("GetPreferences error: %v", err)
	}
	if prefs["theme"] != "light" {
		t.Errorf("theme = %q, want light", prefs["theme"])
	}
	if len(prefs) != 1 {
		t.Errorf("len(prefs) = %d, want 1 (no duplicate rows)", len(prefs))
	}
}

func TestPreferencesScopedPerUser(t *testing.T) {
	s, ctx := mustNewStore(t)
	alice := mustCreateUser(t, s, ctx, "alice")
	bob := mustCreateUser(t, s, ctx, "bobby")

	if err := s.SavePreferences(ctx, alice, map[string]string{"theme": "dark"}); err != nil {
		t.Fatalf("SavePreferences error: %v", err)
	}

	prefs, err := s.GetPreferences(ctx, bob)
	if err != nil {
		t.Fatalf("GetPreferences error: %v", err)
	}
	if len(prefs) != 0 {
		t.Errorf("bob sees alice's preferences: %v", prefs)
	}
}
