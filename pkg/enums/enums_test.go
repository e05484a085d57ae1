package enums

import "testing"

func TestDeliveryStatusTerminality(t *testing.T) {
	t.Parallel()

	if DeliveryStatusPending.IsTerminal() {
		t.Fatal("pending is not terminal")
	}
	if !DeliveryStatusComplete.IsTerminal() || !DeliveryStatusFailed.IsTerminal() {
		t.Fatal("complete and failed are terminal")
	}
}

func TestParseDeliveryStatus(t *testing.T) {
	t.Parallel()

	got, err := ParseDeliveryStatus("complete")
	if err != nil || got != DeliveryStatusComplete {
		t.Fatalf("unexpected result: %v %v", got, err)
	}
	if _, err := ParseDeliveryStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParsePaymentStatus(t *testing.T) {
	t.Parallel()

	got, err := ParsePaymentStatus("paid")
	if err != nil || got != PaymentStatusPaid {
		t.Fatalf("unexpected result: %v %v", got, err)
	}
	if _, err := ParsePaymentStatus("settled-maybe"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
