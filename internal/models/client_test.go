package models

import (
	"reflect"
	"strings"
	"testing"
)

// A busca get-or-create de cliente filtra por (establishment_id, phone)
// dentro do lock do dia, então as duas colunas precisam compartilhar o
// mesmo índice composto.
func TestClientCompositeIndex(t *testing.T) {
	typ := reflect.TypeOf(Client{})

	for _, field := range []string{"EstablishmentID", "Phone"} {
		f, ok := typ.FieldByName(field)
		if !ok {
			t.Fatalf("field %s not found", field)
		}
		if !strings.Contains(f.Tag.Get("gorm"), "index:idx_clients_estab_phone") {
			t.Errorf("%s missing idx_clients_estab_phone: %q", field, f.Tag.Get("gorm"))
		}
	}
}
