package uint128

import "testing"

func FuzzWordsRoundTrip(f *testing.F) {
	f.Add(uint64(0), uint64(0))
	f.Add(^uint64(0), uint64(0))
	f.Add(uint64(0), uint64(1))
	f.Add(^uint64(0), ^uint64(0))

	f.Fuzz(func(t *testing.T, low, high uint64) {
		u := FromWords(low, high)

		back, err := FromBig(u.Big())
		if err != nil {
			t.Fatalf("FromBig(%s): %v", u, err)
		}
		if back != u {
			t.Fatalf("big round trip: got %+v want %+v", back, u)
		}

		parsed, err := Parse(u.String())
		if err != nil {
			t.Fatalf("Parse(%s): %v", u, err)
		}
		l, h := parsed.Words()
		if l != low || h != high {
			t.Fatalf("string round trip: got (%d,%d) want (%d,%d)", l, h, low, high)
		}
	})
}
