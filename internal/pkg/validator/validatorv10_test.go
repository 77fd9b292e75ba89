package validator

import "testing"

func TestV10Validator(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	t.Run("PAN", func(t *testing.T) {
		type in struct {
			PAN string `validate:"pan"`
		}

		valid := []string{"ABCDE1234F", "ZZZZZ9999Z"}
		for _, pan := range valid {
			if err := v.Validate(in{PAN: pan}); err != nil {
				t.Fatalf("expected %s to be valid, got %v", pan, err)
			}
		}

		invalid := []string{"abcde1234f", "ABCDE12345", "ABCD1234F", "ABCDE1234FX", ""}
		for _, pan := range invalid {
			if err := v.Validate(in{PAN: pan}); err == nil {
				t.Fatalf("expected %q to be rejected", pan)
			}
		}
	})

	t.Run("INPhone", func(t *testing.T) {
		type in struct {
			Mobile string `validate:"inphone"`
		}

		valid := []string{"9876543210", "+919876543210", "6000000000"}
		for _, mobile := range valid {
			if err := v.Validate(in{Mobile: mobile}); err != nil {
				t.Fatalf("expected %s to be valid, got %v", mobile, err)
			}
		}

		invalid := []string{"1234567890", "98765", "98765432101", "+929876543210"}
		for _, mobile := range invalid {
			if err := v.Validate(in{Mobile: mobile}); err == nil {
				t.Fatalf("expected %q to be rejected", mobile)
			}
		}
	})

	t.Run("AlphaSpace", func(t *testing.T) {
		type in struct {
			Name string `validate:"alphaspace"`
		}

		if err := v.Validate(in{Name: "Asha Verma"}); err != nil {
			t.Fatalf("expected a plain name to be valid, got %v", err)
		}
		if err := v.Validate(in{Name: "Asha42"}); err == nil {
			t.Fatalf("expected digits to be rejected")
		}
	})

	t.Run("Password", func(t *testing.T) {
		type in struct {
			Password string `validate:"password"`
		}

		if err := v.Validate(in{Password: "longenough"}); err != nil {
			t.Fatalf("expected an 8+ char password to be valid, got %v", err)
		}
		if err := v.Validate(in{Password: "short"}); err == nil {
			t.Fatalf("expected a short password to be rejected")
		}
	})

	t.Run("FieldNamesAreSnakeCase", func(t *testing.T) {
		type in struct {
			FullName string `validate:"required"`
		}

		err := v.Validate(in{})
		verr, ok := err.(V10ValidationError)
		if !ok {
			t.Fatalf("expected a V10ValidationError, got %v", err)
		}
		if _, ok := verr.Values()["full_name"]; !ok {
			t.Fatalf("expected a full_name key, got %v", verr.Values())
		}
	})
}
