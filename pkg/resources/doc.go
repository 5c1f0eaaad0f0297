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

// Package resources implements the TransferWise resource clients.
//
// Each client shapes request payloads for one API area and delegates the
// call to a Requester, normally a *client.Client. Parameters are validated
// before any network call; a failure is returned as apierror.KindValidation.
//
//	quotes, err := resources.NewQuotes(client.Config{
//	    APIBaseURL:     transferwise.DefaultSandboxURL,
//	    APIToken:       token,
//	    PrivateKeyPath: "private.pem",
//	})
//	if err != nil {
//	    return err
//	}
//	resp, err := quotes.CreateQuote(ctx, resources.QuoteParams{
//	    ProfileID:      42,
//	    SourceCurrency: "gbp",
//	    TargetCurrency: "eur",
//	    SourceAmount:   100,
//	})
//
// Provider errors (4xx/5xx) are not Go errors: inspect resp.OK() and
// resp.Body.
package resources
