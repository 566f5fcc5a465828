package services

import (
	"errors"
	"testing"
)

func TestPasswordPolicyValidate(t *testing.T) {
	policy := DefaultPasswordPolicy()

	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "strong", password: "Str0ng!Pass", valid: true},
		{name: "too short", password: "S0!a", valid: false},
		{name: "no upper", password: "str0ng!pass", valid: false},
		{name: "no lower", password: "STR0NG!PASS", valid: false},
		{name: "no digit", password: "Strong!Pass", valid: false},
		{name: "no symbol", password: "Str0ngPass", valid: false},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			err := policy.Validate(testCase.password)
			if testCase.valid && err != nil {
				t.Fatalf("expected %q to pass, got %v", testCase.password, err)
			}
			if !testCase.valid && !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected weak password error for %q, got %v", testCase.password, err)
			}
		})
	}
}

func TestPasswordPolicyRelaxedRules(t *testing.T) {
	policy := PasswordPolicy{MinLength: 6, MaxLength: 10}

	if err := policy.Validate("plain1"); err != nil {
		t.Fatalf("expected relaxed policy to accept plain1, got %v", err)
	}
	if err := policy.Validate("plainpassword1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected max length to be enforced, got %v", err)
	}
	if err := policy.Validate("nodigits"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected digit to stay required, got %v", err)
	}
}

func TestRegistryAppliesPasswordPolicy(t *testing.T) {
	registry := newTestRegistry(t, newTestClock(), WithPasswordPolicy(PasswordPolicy{MinLength: 4}))
	seedTemplates(t, registry, "Scholar")

	input := validRegistration("relaxed@example.com")
	input.Password = "abc1"
	input.ConfirmPassword = "abc1"
	if _, err := registry.Profiles().CreateProfile(input); err != nil {
		t.Fatalf("expected relaxed policy to apply, got %v", err)
	}
}
