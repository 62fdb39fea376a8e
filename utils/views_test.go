package utils

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
)

type recordingResponder struct {
	responses []*discordgo.InteractionResponse
	err       error
}

func (r *recordingResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	r.responses = append(r.responses, resp)
	return r.err
}

func testInteraction() *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{ID: "1", Token: "t"}}
}

func TestAcknowledgeComponentInteraction(t *testing.T) {
	r := &recordingResponder{}
	if err := AcknowledgeComponentInteraction(r, testInteraction()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(r.responses) != 1 {
		t.Fatalf("Expected 1 response, got %d", len(r.responses))
	}
	if r.responses[0].Type != discordgo.InteractionResponseDeferredMessageUpdate {
		t.Errorf("Expected deferred message update, got %v", r.responses[0].Type)
	}
}

func TestRespondEphemeral(t *testing.T) {
	r := &recordingResponder{}
	if err := RespondEphemeral(r, testInteraction(), "nope"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	data := r.responses[0].Data
	if data.Content != "nope" {
		t.Errorf("Expected content 'nope', got '%s'", data.Content)
	}
	if data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("Expected ephemeral flag")
	}
}

func TestInteractionUserID(t *testing.T) {
	guild := testInteraction()
	guild.Member = &discordgo.Member{User: &discordgo.User{ID: "42"}}
	if got := InteractionUserID(guild); got != "42" {
		t.Errorf("Expected member ID '42', got '%s'", got)
	}

	dm := testInteraction()
	dm.User = &discordgo.User{ID: "7"}
	if got := InteractionUserID(dm); got != "7" {
		t.Errorf("Expected user ID '7', got '%s'", got)
	}

	if got := InteractionUserID(testInteraction()); got != "" {
		t.Errorf("Expected empty ID, got '%s'", got)
	}
}

func TestClassifyDeliveryErrorREST(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   int
		want   string
	}{
		{"unknown message", 404, discordgo.ErrCodeUnknownMessage, DeliveryGone},
		{"unknown interaction", 404, discordgo.ErrCodeUnknownInteraction, DeliveryGone},
		{"missing permissions", 403, discordgo.ErrCodeMissingPermissions, DeliveryRejected},
		{"bad request", 400, 50035, DeliveryRejected},
		{"bare not found", 404, 0, DeliveryGone},
		{"rate limited", 429, 0, DeliveryTransient},
		{"server error", 502, 0, DeliveryTransient},
	}

	for _, tt := range tests {
		restErr := &discordgo.RESTError{
			Response: &http.Response{StatusCode: tt.status},
		}
		if tt.code != 0 {
			restErr.Message = &discordgo.APIErrorMessage{Code: tt.code}
		}
		err := fmt.Errorf("edit message: %w", restErr)
		if got := ClassifyDeliveryError(err); got != tt.want {
			t.Errorf("%s: Expected '%s', got '%s'", tt.name, tt.want, got)
		}
	}
}

func TestClassifyDeliveryErrorText(t *testing.T) {
	if got := ClassifyDeliveryError(nil); got != "" {
		t.Errorf("Expected empty kind for nil error, got '%s'", got)
	}

	gone := []string{
		"Unknown Message",
		"Unknown Webhook",
		"\"code\": 10015",
		"Unknown interaction",
		"404 not found",
	}
	for _, errMsg := range gone {
		if got := ClassifyDeliveryError(&MockError{Message: errMsg}); got != DeliveryGone {
			t.Errorf("Expected error '%s' to be gone, got '%s'", errMsg, got)
		}
	}

	rejected := []string{
		"400 bad request",
		"403 Forbidden",
		"Missing Permissions",
	}
	for _, errMsg := range rejected {
		if got := ClassifyDeliveryError(&MockError{Message: errMsg}); got != DeliveryRejected {
			t.Errorf("Expected error '%s' to be rejected, got '%s'", errMsg, got)
		}
	}

	transient := []string{
		"network timeout",
		"connection refused",
		"500 internal server error",
	}
	for _, errMsg := range transient {
		if got := ClassifyDeliveryError(&MockError{Message: errMsg}); got != DeliveryTransient {
			t.Errorf("Expected error '%s' to be transient, got '%s'", errMsg, got)
		}
	}
}

// MockError for testing
type MockError struct {
	Message string
}

func (e *MockError) Error() string {
	return e.Message
}
