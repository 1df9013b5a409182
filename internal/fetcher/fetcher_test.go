package fetcher

import "testing"

func TestQuery_Encode(t *testing.T) {
	var q Query
	q.Add("market_hash_name", "AK-47 | Redline (Field-Tested)")
	q.Add("appid", "730")
	q.Add("currency", "3")

	want := "market_hash_name=AK-47%20%7C%20Redline%20%28Field-Tested%29&appid=730&currency=3"
	if got := q.Encode(); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}

	if got := q.Get("appid"); got != "730" {
		t.Errorf("Get(appid) = %q, want %q", got, "730")
	}
	if got := q.Get("missing"); got != "" {
		t.Errorf("Get(missing) = %q, want empty", got)
	}
}

func TestQuery_EncodeUnicode(t *testing.T) {
	q := Query{{Key: "market_hash_name", Value: "★ Gut Knife | Doppler (Factory New)"}}

	want := "market_hash_name=%E2%98%85%20Gut%20Knife%20%7C%20Doppler%20%28Factory%20New%29"
	if got := q.Encode(); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestRequest_URL(t *testing.T) {
	r := &Request{Path: "/market/myhistory"}
	if got := r.URL(); got != "/market/myhistory" {
		t.Errorf("URL() = %q, want %q", got, "/market/myhistory")
	}

	r.Query.Add("norender", "1")
	if got := r.URL(); got != "/market/myhistory?norender=1" {
		t.Errorf("URL() = %q, want %q", got, "/market/myhistory?norender=1")
	}
}

func TestResult(t *testing.T) {
	ok := Success("k", 42)
	if !ok.Ok() || ok.Value != 42 || ok.Key != "k" {
		t.Errorf("Success() = %+v", ok)
	}

	fail := Failure[int]("k", NewServerError(500))
	if fail.Ok() {
		t.Error("Failure().Ok() = true, want false")
	}
}
