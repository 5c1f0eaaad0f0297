// Copyright (C) 2025 useme-com
//
// This file is part of transferwise-go.
//
// transferwise-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// transferwise-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with transferwise-go.  If not, see <https://www.gnu.org/licenses/>.

package resources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/useme-com/transferwise-go/pkg/client"
)

const (
	profilesPath   = "v1/profiles"
	profilesV3Path = "v3/profiles"
)

// Profiles manages personal and business profiles
type Profiles struct {
	requester Requester
}

// NewProfiles creates a Profiles client with its own engine
func NewProfiles(cfg client.Config, opts ...client.Option) (*Profiles, error) {
	r, err := newRequester(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return ProfilesFrom(r), nil
}

// ProfilesFrom creates a Profiles client over an existing Requester
func ProfilesFrom(r Requester) *Profiles {
	return &Profiles{requester: r}
}

// PersonalProfileParams describes a person. DateOfBirth is YYYY-MM-DD.
type PersonalProfileParams struct {
	FirstName   string `mapstructure:"first_name"    validate:"required"`
	LastName    string `mapstructure:"last_name"     validate:"required"`
	DateOfBirth string `mapstructure:"date_of_birth" validate:"required,datetime=2006-01-02"`
	PhoneNumber string `mapstructure:"phone_number"  validate:"required"`
}

// CreatePersonalProfile creates a personal profile
func (s *Profiles) CreatePersonalProfile(ctx context.Context, p PersonalProfileParams) (*client.Response, error) {
	if err := validateParams("create personal profile", p); err != nil {
		return nil, err
	}

	payload := profilePayload{
		Type: "personal",
		Details: personalDetails{
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			DateOfBirth: p.DateOfBirth,
			PhoneNumber: p.PhoneNumber,
		},
	}
	return s.requester.Request(ctx, http.MethodPost, profilesPath, payload)
}

// BusinessProfileParams describes a business. ACN, ABN and ARBN are
// Australian company numbers and are sent as null when unset.
type BusinessProfileParams struct {
	Name                  string `mapstructure:"name"                    validate:"required"`
	RegistrationNumber    string `mapstructure:"registration_number"     validate:"required"`
	CompanyType           string `mapstructure:"company_type"            validate:"required"`
	CompanyRole           string `mapstructure:"company_role"            validate:"required"`
	DescriptionOfBusiness string `mapstructure:"description_of_business" validate:"required"`
	Webpage               string `mapstructure:"webpage"                 validate:"omitempty,url"`
	ACN                   string `mapstructure:"acn"`
	ABN                   string `mapstructure:"abn"`
	ARBN                  string `mapstructure:"arbn"`
}

// CreateBusinessProfile creates a business profile
func (s *Profiles) CreateBusinessProfile(ctx context.Context, p BusinessProfileParams) (*client.Response, error) {
	if err := validateParams("create business profile", p); err != nil {
		return nil, err
	}

	payload := profilePayload{
		Type: "business",
		Details: businessDetails{
			Name:                  p.Name,
			RegistrationNumber:    p.RegistrationNumber,
			CompanyType:           p.CompanyType,
			CompanyRole:           p.CompanyRole,
			DescriptionOfBusiness: p.DescriptionOfBusiness,
			Webpage:               p.Webpage,
			ACN:                   optional(p.ACN),
			ABN:                   optional(p.ABN),
			ARBN:                  optional(p.ARBN),
		},
	}
	return s.requester.Request(ctx, http.MethodPost, profilesPath, payload)
}

// GetProfiles lists the profiles of the token owner
func (s *Profiles) GetProfiles(ctx context.Context) (*client.Response, error) {
	return s.requester.Request(ctx, http.MethodGet, profilesPath, nil)
}

// FundParams identifies the transfer to fund and the profile owning it
type FundParams struct {
	ProfileID  int64 `mapstructure:"profile_id"  validate:"required"`
	TransferID int64 `mapstructure:"transfer_id" validate:"required"`
}

// Fund pays a transfer from the profile's balance. The provider usually
// answers with a step-up challenge, which the engine handles.
func (s *Profiles) Fund(ctx context.Context, p FundParams) (*client.Response, error) {
	if err := validateParams("fund transfer", p); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/transfers/%d/payments", profilesV3Path, p.ProfileID, p.TransferID)
	return s.requester.Request(ctx, http.MethodPost, path, map[string]string{"type": "BALANCE"})
}

type profilePayload struct {
	Type    string `json:"type"`
	Details any    `json:"details"`
}

type personalDetails struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	PhoneNumber string `json:"phoneNumber"`
}

type businessDetails struct {
	Name                  string  `json:"name"`
	RegistrationNumber    string  `json:"registrationNumber"`
	CompanyType           string  `json:"companyType"`
	CompanyRole           string  `json:"companyRole"`
	DescriptionOfBusiness string  `json:"descriptionOfBusiness"`
	Webpage               string  `json:"webpage"`
	ACN                   *string `json:"acn"`
	ABN                   *string `json:"abn"`
	ARBN                  *string `json:"arbn"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
