package errors_test

import (
	"fmt"
	"testing"

	"github.com/thornvale/emberwood/internal/platform/errors"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestHandleErrorNil(t *testing.T) {
	if err := errors.HandleError(nil, "en-US"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestHandleErrorDomainError(t *testing.T) {
	domainErr := errors.WithMetadata(errors.CodeGearNotFound,
		"gear not found in inventory",
		map[string]string{"GearID": "g-1"})

	err := errors.HandleError(domainErr, "")
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected grpc status, got %v", err)
	}
	if st.Code() != codes.NotFound {
		t.Errorf("code = %v, want NotFound", st.Code())
	}
	if st.Message() != "gear not found in inventory" {
		t.Errorf("status message = %q, want internal message", st.Message())
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil {
		t.Fatal("expected ErrorInfo detail")
	}
	if info.Reason != "GEAR_NOT_FOUND" || info.Domain != errors.Domain {
		t.Errorf("error info = %+v", info)
	}
	if info.Metadata["GearID"] != "g-1" {
		t.Errorf("metadata = %v, want GearID g-1", info.Metadata)
	}
	if localized == nil {
		t.Fatal("expected LocalizedMessage detail")
	}
	if localized.Locale != "en-US" {
		t.Errorf("locale = %q, want en-US", localized.Locale)
	}
	if localized.Message != "That gear is not in your inventory" {
		t.Errorf("localized message = %q", localized.Message)
	}
}

func TestHandleErrorUnknownError(t *testing.T) {
	err := errors.HandleError(fmt.Errorf("disk on fire"), "en-US")
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected grpc status, got %v", err)
	}
	if st.Code() != codes.Internal {
		t.Errorf("code = %v, want Internal", st.Code())
	}
	if st.Message() != "an unexpected error occurred" {
		t.Errorf("message = %q, internal detail must not leak", st.Message())
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "templated metadata",
			err: errors.WithMetadata(errors.CodeNoGearEquipped,
				"no gear equipped in slot",
				map[string]string{"Slot": "helm"}),
			want: "Nothing is equipped in the helm slot",
		},
		{
			name: "no metadata",
			err:  errors.New(errors.CodeNoInventory, "player has no inventory"),
			want: "You have no inventory yet",
		},
		{
			name: "non-domain error falls back to Error()",
			err:  fmt.Errorf("dial tcp: timeout"),
			want: "dial tcp: timeout",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.UserMessage(tt.err, ""); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetCodeAndIsCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", errors.New(errors.CodePlayerNotFound, "missing"))
	if got := errors.GetCode(wrapped); got != errors.CodePlayerNotFound {
		t.Errorf("GetCode = %q, want PLAYER_NOT_FOUND", got)
	}
	if !errors.IsCode(wrapped, errors.CodePlayerNotFound) {
		t.Error("IsCode should match through wrapping")
	}
	if got := errors.GetCode(fmt.Errorf("plain")); got != errors.CodeUnknown {
		t.Errorf("GetCode on plain error = %q, want UNKNOWN", got)
	}
}
