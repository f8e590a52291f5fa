package account

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/cli/clitest"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/mockserver"
)

func TestLoginCmd(t *testing.T) {
	h := clitest.New(t)

	cmd := &LoginCmd{Email: mockserver.DemoEmail, Password: mockserver.DemoPassword}
	if err := cmd.Run(h.Ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	out := h.Output()
	if !strings.Contains(out, "Logged in as demo") || !strings.Contains(out, "moodlit test take") {
		t.Errorf("unexpected output:\n%s", out)
	}

	h.Reload(t)
	if !h.Ctx.Session.IsAuthenticated() || h.Ctx.Session.Nickname() != "demo" {
		t.Error("session not restored after reload")
	}
}

func TestLoginCmd_BadPassword(t *testing.T) {
	h := clitest.New(t)

	cmd := &LoginCmd{Email: mockserver.DemoEmail, Password: "nope"}
	err := cmd.Run(h.Ctx)
	if err == nil || !strings.Contains(err.Error(), "invalid email or password") {
		t.Fatalf("err = %v", err)
	}
	if h.Ctx.Session.IsAuthenticated() {
		t.Error("failed login left a session behind")
	}
}

func TestLogoutCmd(t *testing.T) {
	h := clitest.New(t)
	h.LoginDemo(t)

	if err := (&LogoutCmd{}).Run(h.Ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	h.Reload(t)
	if h.Ctx.Session.IsAuthenticated() {
		t.Error("session survived logout")
	}
	if _, err := h.Store.GetValue(constants.KeyNickname); err == nil {
		t.Error("nickname kept after logout")
	}
}

func TestSignupCmd(t *testing.T) {
	h := clitest.New(t)

	cmd := &SignupCmd{Email: "new@example.com", Password: "secret", Nickname: "newbie"}
	if err := cmd.Run(h.Ctx); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if !strings.Contains(h.Output(), "Account created") {
		t.Error("missing confirmation")
	}

	err := cmd.Run(h.Ctx)
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Errorf("duplicate signup err = %v", err)
	}

	bad := &SignupCmd{Email: "not-an-email", Password: "secret", Nickname: "x"}
	if err := bad.Run(h.Ctx); err == nil || !strings.Contains(err.Error(), "signup rejected") {
		t.Errorf("invalid email err = %v", err)
	}

	login := &LoginCmd{Email: "new@example.com", Password: "secret"}
	if err := login.Run(h.Ctx); err != nil {
		t.Fatalf("login after signup failed: %v", err)
	}
}

func TestCheckEmailCmd(t *testing.T) {
	h := clitest.New(t)

	if err := (&CheckEmailCmd{Email: mockserver.DemoEmail}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.Output(), "already registered") {
		t.Error("demo email reported available")
	}

	if err := (&CheckEmailCmd{Email: "free@example.com"}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.Output(), "is available") {
		t.Error("free email reported taken")
	}
}

func TestHomeCmd(t *testing.T) {
	h := clitest.New(t)
	h.LoginDemo(t)

	if err := (&HomeCmd{}).Run(h.Ctx); err != nil {
		t.Fatalf("home failed: %v", err)
	}
	out := h.Output()
	for _, want := range []string{"Hi, demo", "Level 1", "0/100 xp", "none yet"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAccessLevels(t *testing.T) {
	h := clitest.New(t)

	if err := cli.Guard(&HomeCmd{}, h.Ctx.Session); err == nil {
		t.Error("home allowed while logged out")
	}
	if err := cli.Guard(&LoginCmd{}, h.Ctx.Session); err != nil {
		t.Errorf("login blocked while logged out: %v", err)
	}

	h.LoginDemo(t)
	err := cli.Guard(&LoginCmd{}, h.Ctx.Session)
	var guardErr *cli.GuardError
	if !errors.As(err, &guardErr) || guardErr.Redirect != constants.PathTest {
		t.Errorf("login while logged in without quiz = %v, want redirect to %s", err, constants.PathTest)
	}
	if err := cli.Guard(&HomeCmd{}, h.Ctx.Session); err != nil {
		t.Errorf("home blocked while logged in: %v", err)
	}
}
