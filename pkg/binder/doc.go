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

// Package binder forwards calls to a resource client and fills in
// configured arguments from the binder's own state.
//
// A binder is configured with a Bindings table that maps, per method, an
// argument name to a source. A source is either a producer registered with
// Provide or an attribute set with Set:
//
//	b, err := binder.NewQuotes(cfg, binder.Bindings{
//	    "CreateQuote": {"profile_id": "current_profile_id"},
//	})
//	if err != nil {
//	    return err
//	}
//	b.Set("current_profile_id", 42)
//
//	// forwarded as CreateQuote(profile_id=42, source_currency="GBP", ...)
//	resp, err := b.Call(ctx, "CreateQuote", binder.Kwargs{
//	    "source_currency": "GBP",
//	    "target_currency": "EUR",
//	    "source_amount":   100,
//	})
//
// Arguments passed explicitly to Call always win over bound ones.
package binder
