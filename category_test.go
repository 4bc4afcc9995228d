package main

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

var apachePat = regexp.MustCompile(
	`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3} - \S+ \[\d{2}/[A-Z][a-z]{2}/\d{4}:\d{2}:\d{2}:\d{2} [+-]\d{4}\] "(GET|POST) /\S+ HTTP/1\.1" (\d{3}) 1024$`)

func TestApacheLineFormat(t *testing.T) {
	rng := NewRng("test")
	for i := 0; i < 50; i++ {
		line := apacheLine(rng, "GET", 200)
		m := apachePat.FindStringSubmatch(line)
		if m == nil {
			t.Fatalf("line does not match access log format: %q", line)
		}
		if m[2] != "200" {
			t.Errorf("status = %s, want 200", m[2])
		}
	}
}

func TestFlowLineFormat(t *testing.T) {
	rng := NewRng("test")
	line := flowLine(rng, "REJECT", "OK", 22)
	fields := strings.Fields(line)
	if len(fields) != 14 {
		t.Fatalf("flow line has %d fields, want 14: %q", len(fields), line)
	}
	if fields[0] != "2" || fields[1] != "1234567890" || fields[2] != "eni-sdvu4NphZxGvp1MDz" {
		t.Errorf("fixed fields wrong: %q", line)
	}
	if fields[6] != "22" || fields[7] != "6" {
		t.Errorf("destination port/protocol wrong: %q", line)
	}
	if fields[12] != "REJECT" || fields[13] != "OK" {
		t.Errorf("action/status wrong: %q", line)
	}

	start, err := strconv.ParseInt(fields[10], 10, 64)
	if err != nil {
		t.Fatalf("start time not an epoch: %q", fields[10])
	}
	end, err := strconv.ParseInt(fields[11], 10, 64)
	if err != nil {
		t.Fatalf("end time not an epoch: %q", fields[11])
	}
	if start > end {
		t.Errorf("start %d after end %d", start, end)
	}
	if now := time.Now().Unix(); end < now-5 || end > now+5 {
		t.Errorf("end %d not near now %d", end, now)
	}
}

func luhnValid(s string) bool {
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		d := int(s[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func TestLeakPair(t *testing.T) {
	rng := NewRng("test")
	cat := Category{Name: "http-leak", Kind: HTTPLeak, Rate: 1}
	cardPat := regexp.MustCompile(`could not charge card (\d{16})!`)

	for i := 0; i < 20; i++ {
		recs := cat.Produce(rng)
		if len(recs) != 2 {
			t.Fatalf("leak emission has %d records, want 2", len(recs))
		}
		for _, rec := range recs {
			if rec["service"] != "storedog" {
				t.Errorf("leak record service = %v, want storedog", rec["service"])
			}
		}
		m := cardPat.FindStringSubmatch(recs[1]["message"].(string))
		if m == nil {
			t.Fatalf("second record has no card number: %v", recs[1]["message"])
		}
		if !luhnValid(m[1]) {
			t.Errorf("card number %s is not Luhn-valid", m[1])
		}
	}
}

func TestEveryKindProducesRecords(t *testing.T) {
	rng := NewRng("test")
	services := map[CategoryKind]string{
		HTTPNormal: "storedog",
		HTTPError:  "storedog",
		HTTPLeak:   "storedog",
		FlowAccept: "aws.vpc_flow_logs",
		FlowReject: "aws.vpc_flow_logs",
	}
	for kind, service := range services {
		recs := Category{Kind: kind}.Produce(rng)
		if len(recs) == 0 {
			t.Fatalf("kind %d produced no records", kind)
		}
		for _, rec := range recs {
			msg, ok := rec["message"].(string)
			if !ok || msg == "" {
				t.Errorf("kind %d produced an empty message", kind)
			}
			if rec["service"] != service {
				t.Errorf("kind %d service = %v, want %s", kind, rec["service"], service)
			}
		}
	}
}
