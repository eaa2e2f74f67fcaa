package repository_test

import (
	"errors"
	"testing"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/ErlanBelekov/account-service/internal/repository"
)

type fakeHasher struct{}

func (fakeHasher) Hash(p string) (string, error) { return "hash:" + p, nil }
func (fakeHasher) Verify(p, h string) bool     { return h == "hash:"+p }

type fakeIssuer struct {
	issue func(subjectID string) (string, error)
}

func (f *fakeIssuer) Issue(subjectID string) (string, error) { return f.issue(subjectID) }

var stored = &domain.User{ID: "user-1", Email: "ann@example.com", PasswordHash: "hash:pw", Name: "Ann"}

func TestCompleteLogin_Success(t *testing.T) {
	var issuedFor string
	issuer := &fakeIssuer{issue: func(id string) (string, error) {
		issuedFor = id
		return "signed", nil
	}}

	profile, err := repository.CompleteLogin(stored, domain.UserCredential{Email: stored.Email, Password: "pw"}, fakeHasher{}, issuer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issuedFor != "user-1" {
		t.Errorf("token issued for %q, want user-1", issuedFor)
	}
	if profile.Token != "signed" || profile.User.ID != "user-1" || profile.User.Name != "Ann" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestCompleteLogin_UnknownAndWrongPasswordAreIndistinguishable(t *testing.T) {
	issuer := &fakeIssuer{issue: func(string) (string, error) {
		t.Fatal("no token should be issued")
		return "", nil
	}}

	_, errUnknown := repository.CompleteLogin(nil, domain.UserCredential{Email: "x@y.z", Password: "pw"}, fakeHasher{}, issuer)
	_, errWrong := repository.CompleteLogin(stored, domain.UserCredential{Email: stored.Email, Password: "bad"}, fakeHasher{}, issuer)

	if !errors.Is(errUnknown, domain.ErrUserNotFound) || !errors.Is(errWrong, domain.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound twice, got %v and %v", errUnknown, errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("messages differ: %q vs %q", errUnknown, errWrong)
	}
}

func TestCompleteLogin_IssueFailure(t *testing.T) {
	cause := errors.New("signer broken")
	issuer := &fakeIssuer{issue: func(string) (string, error) { return "", cause }}

	_, err := repository.CompleteLogin(stored, domain.UserCredential{Email: stored.Email, Password: "pw"}, fakeHasher{}, issuer)

	var ge *domain.GenericError
	if !errors.As(err, &ge) || !errors.Is(err, cause) {
		t.Fatalf("want GenericError wrapping cause, got %v", err)
	}
}
