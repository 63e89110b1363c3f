package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/thesavant42/phonefinder/internal/models"
	"github.com/thesavant42/phonefinder/internal/phone"
)

func requiredField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// NewContributionForm builds the contribution form bound to c.
// Phone number and carrier are required; name and city are optional.
func NewContributionForm(c *models.Contribution) *huh.Form {
	keymap := huh.NewDefaultKeyMap()
	keymap.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("phoneNumber").
				Title("Phone Number").
				Description("Required. International format, e.g. +919876543210").
				Placeholder("+919876543210").
				CharLimit(32).
				Value(&c.PhoneNumber).
				Validate(requiredField("phone number")),
			huh.NewInput().
				Key("name").
				Title("Name").
				Description("Optional. Defaults to Unknown").
				Value(&c.Name),
			huh.NewInput().
				Key("city").
				Title("City").
				Description("Optional. Defaults to the number's region").
				Value(&c.City),
			huh.NewInput().
				Key("carrier").
				Title("Carrier").
				Description("Required").
				Placeholder("Airtel").
				Value(&c.Carrier).
				Validate(requiredField("carrier")),
		).Title("Contribute Information"),
	).
		WithTheme(NewAppTheme()).
		WithKeyMap(keymap).
		WithShowHelp(true)
}

// CleanContribution strips control characters and surrounding spaces from every field
func CleanContribution(c models.Contribution) models.Contribution {
	return models.Contribution{
		PhoneNumber: phone.Sanitize(c.PhoneNumber),
		Name:        phone.Sanitize(c.Name),
		City:        phone.Sanitize(c.City),
		Carrier:     phone.Sanitize(c.Carrier),
	}
}

// PromptForContribution runs the contribution form standalone, pre-filled with c
func PromptForContribution(c models.Contribution) (models.Contribution, error) {
	form := NewContributionForm(&c)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return models.Contribution{}, fmt.Errorf("prompt cancelled: %w", err)
		}
		return models.Contribution{}, fmt.Errorf("contribution form failed: %w", err)
	}
	return CleanContribution(c), nil
}
