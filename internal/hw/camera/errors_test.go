package camera

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_KindsAreDistinct(t *testing.T) {
	cause := errors.New("disk full")
	acq := acquisitionError("sample.jpg", cause)
	per := persistenceError("/out/photo.jpg", cause)

	if !errors.Is(acq, ErrAcquisition) || errors.Is(acq, ErrPersistence) {
		t.Errorf("acquisition error matched wrong sentinel: %v", acq)
	}
	if !errors.Is(per, ErrPersistence) || errors.Is(per, ErrAcquisition) {
		t.Errorf("persistence error matched wrong sentinel: %v", per)
	}
	if !errors.Is(acq, cause) || !errors.Is(per, cause) {
		t.Error("cause must stay reachable through Unwrap")
	}
}

func TestError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("take_photo: %w", acquisitionError("", errors.New("no device")))

	kind, ok := KindOf(err)
	if !ok || kind != KindAcquisition {
		t.Errorf("KindOf = %v, %v; want acquisition, true", kind, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf(plain error) should report false")
	}
}

func TestError_Message(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{acquisitionError("sample.jpg", errors.New("missing")), "camera capture sample.jpg: missing"},
		{persistenceError("", errors.New("empty destination")), "camera save: empty destination"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	if KindAcquisition.String() != "acquisition" || KindPersistence.String() != "persistence" || Kind(0).String() != "unknown" {
		t.Error("unexpected Kind strings")
	}
}
