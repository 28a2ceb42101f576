package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/washly/pkg/validate"
)

type registerInput struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestStructValid(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name: "Asha", Email: "asha@example.com", Password: "supersecret",
	})
	if validate.HasErrors(errs) {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestRequired(t *testing.T) {
	errs := validate.Struct(registerInput{Email: "asha@example.com", Password: "supersecret"})
	if errs["name"] != "The name field is required." {
		t.Errorf("unexpected message: %q", errs["name"])
	}
	if _, ok := errs["email"]; ok {
		t.Error("email should pass")
	}
}

func TestEmail(t *testing.T) {
	for _, bad := range []string{"plain", "no@tld", "two@@example.com", "a b@example.com"} {
		errs := validate.Struct(registerInput{Name: "Asha", Email: bad, Password: "supersecret"})
		if _, ok := errs["email"]; !ok {
			t.Errorf("expected %q to fail email validation", bad)
		}
	}
}

func TestStringLength(t *testing.T) {
	errs := validate.Struct(registerInput{Name: "A", Email: "a@example.com", Password: "supersecret"})
	if errs["name"] != "The name field must be at least 2." {
		t.Errorf("unexpected message: %q", errs["name"])
	}

	long := make([]byte, 60)
	for i := range long {
		long[i] = 'x'
	}
	errs = validate.Struct(registerInput{Name: string(long), Email: "a@example.com", Password: "supersecret"})
	if _, ok := errs["name"]; !ok {
		t.Error("expected max=50 to fail")
	}
}

func TestFirstFailingRuleWins(t *testing.T) {
	errs := validate.Struct(registerInput{})
	// required comes before min, so the required message is reported.
	if errs["password"] != "The password field is required." {
		t.Errorf("unexpected message: %q", errs["password"])
	}
}

func TestNumericRules(t *testing.T) {
	type item struct {
		Quantity int    `json:"quantity" validate:"required,gte=1,lte=100"`
		Price    string `json:"price" validate:"nullable,numeric"`
		Count    string `json:"count" validate:"nullable,integer"`
	}

	if errs := validate.Struct(item{Quantity: 5}); validate.HasErrors(errs) {
		t.Fatalf("expected no errors, got %v", errs)
	}

	errs := validate.Struct(item{Quantity: 500})
	if errs["quantity"] != "The quantity field must be less than or equal to 100." {
		t.Errorf("unexpected message: %q", errs["quantity"])
	}

	errs = validate.Struct(item{Quantity: 1, Price: "abc"})
	if _, ok := errs["price"]; !ok {
		t.Error("expected non-numeric string to fail")
	}

	errs = validate.Struct(item{Quantity: 1, Count: "2.5"})
	if _, ok := errs["count"]; !ok {
		t.Error("expected fractional value to fail integer rule")
	}
}

func TestNullableSkipsWhenEmpty(t *testing.T) {
	type input struct {
		Notes string `json:"notes" validate:"nullable,max=5"`
	}

	if errs := validate.Struct(input{}); validate.HasErrors(errs) {
		t.Fatalf("empty nullable field must pass, got %v", errs)
	}
	if errs := validate.Struct(input{Notes: "too long for five"}); !validate.HasErrors(errs) {
		t.Fatal("non-empty nullable field must still be validated")
	}
}

func TestInRule(t *testing.T) {
	type input struct {
		Role string `json:"role" validate:"required,in=CUSTOMER,ADMIN,DELIVERY_GUY"`
	}

	if errs := validate.Struct(input{Role: "ADMIN"}); validate.HasErrors(errs) {
		t.Fatalf("expected no errors, got %v", errs)
	}

	errs := validate.Struct(input{Role: "ROOT"})
	if errs["role"] != "The role field must be one of: CUSTOMER,ADMIN,DELIVERY_GUY." {
		t.Errorf("unexpected message: %q", errs["role"])
	}
}

func TestPointerFields(t *testing.T) {
	type input struct {
		LaundryID *uint `json:"laundry_id" validate:"required,numeric"`
	}

	if errs := validate.Struct(input{}); !validate.HasErrors(errs) {
		t.Fatal("nil required pointer must fail")
	}

	id := uint(3)
	if errs := validate.Struct(input{LaundryID: &id}); validate.HasErrors(errs) {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestFieldNameFallsBackToStructName(t *testing.T) {
	type input struct {
		Token string `validate:"required"`
	}

	errs := validate.Struct(input{})
	if _, ok := errs["Token"]; !ok {
		t.Errorf("expected error keyed by struct field name, got %v", errs)
	}
}
