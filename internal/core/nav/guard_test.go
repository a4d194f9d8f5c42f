package nav

import "testing"

func TestFind(t *testing.T) {
	cases := []struct {
		path string
		name string
		ok   bool
	}{
		{"/login", RouteLogin, true},
		{"/register", RouteRegister, true},
		{"/accounts", RouteAccounts, true},
		{"/accounts/create", RouteCreate, true},
		{"/accounts/42/edit", RouteEdit, true},
		{"/accounts/abc-def/edit", RouteEdit, true},
		{"/accounts/42", "", false},
		{"/accounts//edit", "", false},
		{"/nowhere", "", false},
		{"/", "", false},
	}
	for _, tc := range cases {
		r, ok := Find(tc.path)
		if ok != tc.ok {
			t.Fatalf("Find(%q) ok = %v, want %v", tc.path, ok, tc.ok)
		}
		if ok && r.Name != tc.name {
			t.Fatalf("Find(%q) = %q, want %q", tc.path, r.Name, tc.name)
		}
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		path     string
		authed   bool
		action   Action
		returnTo string
	}{
		// Protected views require a session; the original target is kept.
		{"/accounts", false, RedirectLogin, "/accounts"},
		{"/accounts/create", false, RedirectLogin, "/accounts/create"},
		{"/accounts/7/edit", false, RedirectLogin, "/accounts/7/edit"},

		// Authenticated sessions pass straight through.
		{"/accounts", true, Proceed, ""},
		{"/accounts/create", true, Proceed, ""},
		{"/accounts/7/edit", true, Proceed, ""},

		// Auth views bounce an existing session to the list.
		{"/login", true, RedirectAccounts, ""},
		{"/register", true, RedirectAccounts, ""},
		{"/login", false, Proceed, ""},
		{"/register", false, Proceed, ""},

		// Unknown paths fall through toward login; ReturnTo stays empty
		// because there is nothing sensible to come back to.
		{"/nowhere", false, RedirectLogin, ""},
		{"/nowhere", true, RedirectAccounts, ""},
	}
	for _, tc := range cases {
		d := Resolve(tc.path, tc.authed)
		if d.Action != tc.action || d.ReturnTo != tc.returnTo {
			t.Fatalf("Resolve(%q, %v) = %+v, want action %v returnTo %q",
				tc.path, tc.authed, d, tc.action, tc.returnTo)
		}
	}
}

func TestRoutesIsACopy(t *testing.T) {
	r := Routes()
	r[0].Path = "/mutated"
	if got := Routes()[0].Path; got != "/login" {
		t.Fatalf("route table mutated through returned copy: %q", got)
	}
}
