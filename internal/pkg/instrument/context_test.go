package instrument

import (
	"context"
	"testing"
)

func TestCorrelationID(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		ctx := SetCorrelationID(context.Background(), "cid-123")

		// Act
		got := GetCorrelationID(ctx)

		// Assert
		if got != "cid-123" {
			t.Fatalf("expected cid-123, got %q", got)
		}
	})

	t.Run("MissingReturnsEmpty", func(t *testing.T) {
		// Act
		got := GetCorrelationID(context.Background())

		// Assert
		if got != "" {
			t.Fatalf("expected empty, got %q", got)
		}
	})
}
