package main

import (
	"fmt"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
)

// CategoryKind selects the record shape a category emits.
type CategoryKind int

const (
	HTTPNormal CategoryKind = iota
	HTTPError
	HTTPLeak
	FlowAccept
	FlowReject
)

// A Category is one independently paced stream of records. Name feeds
// logging and the category's random seed; Rate is the target in records
// per second, with 0 meaning the category is disabled.
type Category struct {
	Name string
	Kind CategoryKind
	Rate int
}

// Categories maps the configured rates onto the five known categories.
func Categories(opts *Options) []Category {
	return []Category{
		{Name: "http", Kind: HTTPNormal, Rate: opts.Rates.HTTP},
		{Name: "http-error", Kind: HTTPError, Rate: opts.Rates.HTTPError},
		{Name: "http-leak", Kind: HTTPLeak, Rate: opts.Rates.HTTPLeak},
		{Name: "flow", Kind: FlowAccept, Rate: opts.Rates.Flow},
		{Name: "flow-attack", Kind: FlowReject, Rate: opts.Rates.FlowAttack},
	}
}

// buzzwords supplies the request paths of generated access lines.
var buzzwords = []string{
	"aggregate", "architect", "benchmark", "brand", "cultivate", "deliver",
	"deploy", "disintermediate", "drive", "embrace", "empower", "enable",
	"engage", "engineer", "enhance", "envisioneer", "evolve", "expedite",
	"exploit", "extend", "facilitate", "generate", "grow", "harness",
	"implement", "incentivize", "incubate", "innovate", "integrate",
	"iterate", "leverage", "matrix", "maximize", "mesh", "monetize",
	"optimize", "orchestrate", "productize", "recontextualize", "redefine",
	"reintermediate", "repurpose", "revolutionize", "scale", "seize",
	"streamline", "strategize", "syndicate", "synergize", "synthesize",
	"target", "transform", "unleash", "utilize", "visualize", "whiteboard",
}

// Produce synthesizes one logical event as an ordered sequence of records.
// Most kinds emit a single record; HTTPLeak emits the failed-charge pair:
// the 504 access line followed by the error line carrying the card number.
func (c Category) Produce(rng Rng) []Record {
	switch c.Kind {
	case HTTPNormal:
		return []Record{
			{"message": apacheLine(rng, "GET", 200), "service": "storedog"},
		}
	case HTTPError:
		return []Record{
			{"message": apacheLine(rng, "GET", 500), "service": "storedog"},
		}
	case HTTPLeak:
		return []Record{
			{"message": apacheLine(rng, "POST", 504), "service": "storedog"},
			{"message": fmt.Sprintf("ERROR could not charge card %s!", creditCardNumber(rng)), "service": "storedog"},
		}
	case FlowAccept:
		return []Record{
			{"message": flowLine(rng, "ACCEPT", "OK", 443), "service": "aws.vpc_flow_logs"},
		}
	case FlowReject:
		return []Record{
			{"message": flowLine(rng, "REJECT", "OK", 22), "service": "aws.vpc_flow_logs"},
		}
	}
	return nil
}

// apacheLine formats one access-log line in common log format.
func apacheLine(rng Rng, method string, status int) string {
	ts := time.Now().Format("02/Jan/2006:15:04:05 -0700")
	return fmt.Sprintf("%s - %s [%s] \"%s /%s HTTP/1.1\" %d %d",
		rng.IPv4(), petname.Generate(2, "."), ts, method, rng.Choice(buzzwords), status, 1024)
}

// flowLine formats one VPC flow log line: version, account, interface,
// source/destination address and port, protocol, packets, bytes, capture
// window, action, log status.
func flowLine(rng Rng, action, status string, port int) string {
	end := time.Now()
	start := end.Add(-time.Duration(rng.Range(5, 30)) * time.Second)
	return fmt.Sprintf("%d %s %s %s %s %d %d %d %d %d %d %d %s %s",
		2, "1234567890", "eni-sdvu4NphZxGvp1MDz",
		rng.IPv4(), rng.IPv4(),
		rng.Range(30000, 78000), port, 6,
		rng.Range(5, 1000), rng.Range(230, 9000),
		start.Unix(), end.Unix(), action, status)
}

// creditCardNumber returns a Luhn-valid 16-digit card number so the leaked
// lines trip the same checks a real pan would.
func creditCardNumber(rng Rng) string {
	digits := make([]byte, 16)
	digits[0] = '4'
	for i := 1; i < 15; i++ {
		digits[i] = byte('0' + rng.Intn(10))
	}
	digits[15] = '0' + luhnCheckDigit(digits[:15])
	return string(digits)
}

func luhnCheckDigit(digits []byte) byte {
	sum := 0
	double := true
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return byte((10 - sum%10) % 10)
}
