package ride

import (
	"errors"
	"math"
	"testing"

	"cabdispatch/internal/modules/location"
	"cabdispatch/internal/types"
)

func seedLedger() *Ledger {
	l := NewLedger()
	for _, r := range []*Ride{
		{CustomerID: "c1", DriverID: "d1", Fare: 50, Commission: 15, Path: []location.NodeID{1, 2, 3}},
		{CustomerID: "c2", DriverID: "d1", Fare: 20, Commission: 6},
		{CustomerID: "c1", DriverID: "d2", Fare: 30, Commission: 9},
	} {
		l.append(r)
	}
	return l
}

func rideIDs(rs []*Ride) []RideID {
	out := make([]RideID, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestLedgerIndexes(t *testing.T) {
	l := seedLedger()

	cases := []struct {
		name string
		got  []*Ride
		want []RideID
	}{
		{"all", l.All(), []RideID{1, 2, 3}},
		{"customer c1", l.ByCustomer("c1"), []RideID{1, 3}},
		{"customer c2", l.ByCustomer("c2"), []RideID{2}},
		{"driver d1", l.ByDriver("d1"), []RideID{1, 2}},
		{"unknown customer", l.ByCustomer(types.ID("nobody")), []RideID{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rideIDs(tc.got)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestLedgerTotals(t *testing.T) {
	l := seedLedger()
	if l.Count() != 3 {
		t.Fatalf("count = %d", l.Count())
	}
	sum := 0.0
	for _, r := range l.All() {
		sum += r.Commission
	}
	if math.Abs(l.TotalCommission()-sum) > 1e-9 || math.Abs(sum-30) > 1e-9 {
		t.Fatalf("total commission = %v, sum = %v", l.TotalCommission(), sum)
	}
	if NewLedger().TotalCommission() != 0 {
		t.Fatal("empty ledger should have zero commission")
	}
}

func TestLedgerGetReturnsCopy(t *testing.T) {
	l := seedLedger()
	r, err := l.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	r.Fare = 999
	r.Path[0] = 4242
	again, _ := l.Get(1)
	if again.Fare != 50 {
		t.Fatal("ledger entry mutated through returned pointer")
	}
	if again.Path[0] != 1 {
		t.Fatalf("ledger path mutated through Get: %v", again.Path)
	}

	all := l.All()
	all[0].Path[len(all[0].Path)-1] = 777
	l.ByCustomer("c1")[0].Path[1] = 555
	again, _ = l.Get(1)
	if again.Path[1] != 2 || again.Path[2] != 3 {
		t.Fatalf("ledger path mutated through projections: %v", again.Path)
	}
}

func TestLedgerAppendStoresCopy(t *testing.T) {
	l := NewLedger()
	r := &Ride{CustomerID: "c1", DriverID: "d1", Path: []location.NodeID{7, 8}}
	l.append(r)
	r.Path[0] = 99
	r.Fare = 1
	got, err := l.Get(r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Path[0] != 7 || got.Fare != 0 {
		t.Fatalf("ledger shares state with appended ride: %+v", got)
	}
	if _, err := l.Get(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
