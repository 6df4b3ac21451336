// pkg/ingest/aixm/aixm.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package aixm is a tolerant SAX-style reader for EAUPCDRReply and
// EAUPRSAReply documents: an encoding/xml.Decoder token loop that
// recognises the element/attribute subset ingest.Ingester needs and
// ignores everything else, per the "unknown elements are tolerated"
// contract. It is not a general AIXM 5.1/GML validator.
package aixm

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/altitude"
	"github.com/mmp/adrcore/pkg/aup"
	"github.com/mmp/adrcore/pkg/ingest"
	"github.com/mmp/adrcore/pkg/temporal"
	"github.com/mmp/adrcore/pkg/util"
)

// localName strips any namespace prefix ("adr:Airspace" -> "Airspace").
func localName(n xml.Name) string {
	return n.Local
}

// Source is an ingest.FeatureSource read from one AIXM/EAUP document.
type Source struct {
	features []ingest.Feature
	parseIDs map[string]uuid.UUID
}

func (s *Source) Features() []ingest.Feature { return s.features }

func (s *Source) ResolveParseID(ident string) (uuid.UUID, bool) {
	id, ok := s.parseIDs[ident]
	return id, ok
}

// Parse reads one EAUPCDRReply or EAUPRSAReply document from r,
// recording a ParseError on errs for each malformed value encountered
// but continuing to the next feature.
func Parse(r io.Reader, errs *util.ErrorLogger) (*Source, error) {
	dec := xml.NewDecoder(r)
	src := &Source{parseIDs: map[string]uuid.UUID{}}

	var cur *featureBuilder
	var curSlice *sliceBuilder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("aixm: decode: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch localName(t.Name) {
			case "Airspace":
				cur = newFeatureBuilder(temporal.KindAirspace)
			case "RouteSegment":
				cur = newFeatureBuilder(temporal.KindRouteSegment)
			case "timeSlice":
				if cur == nil {
					errs.ErrorString("timeSlice outside of a feature, ignoring")
					continue
				}
				curSlice = newSliceBuilder(attr(t, "interpretation"))
			case "designatorIdent":
				if curSlice != nil {
					curSlice.ident = textOf(dec)
				}
			case "type":
				if curSlice != nil {
					curSlice.airspaceType = textOf(dec)
				}
			case "route":
				if curSlice != nil {
					curSlice.route = textOf(dec)
				}
			case "start":
				if curSlice != nil {
					curSlice.start = textOf(dec)
				}
			case "end":
				if curSlice != nil {
					curSlice.end = textOf(dec)
				}
			case "validStart":
				if curSlice != nil {
					curSlice.validStart = parseInstant(textOf(dec), errs)
				}
			case "validEnd":
				if curSlice != nil {
					curSlice.validEnd = parseInstant(textOf(dec), errs)
				}
			case "availability":
				if curSlice != nil {
					curSlice.availabilities = append(curSlice.availabilities, parseAvailability(dec, errs))
				}
			case "activation":
				if curSlice != nil {
					act := parseActivation(dec, errs)
					curSlice.activation = &act
				}
			case "parseID":
				ident := attr(t, "ident")
				idStr := textOf(dec)
				if id, err := uuid.Parse(idStr); err == nil {
					src.parseIDs[ident] = id
				} else {
					errs.ErrorString("parseID %q: malformed uuid %q", ident, idStr)
				}
			}

		case xml.EndElement:
			switch localName(t.Name) {
			case "timeSlice":
				if cur != nil && curSlice != nil {
					cur.slices = append(cur.slices, curSlice.build())
				}
				curSlice = nil
			case "Airspace", "RouteSegment":
				if cur != nil {
					src.features = append(src.features, cur.build())
				}
				cur = nil
			}
		}
	}

	return src, nil
}

func attr(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if localName(a.Name) == name {
			return a.Value
		}
	}
	return ""
}

// textOf consumes tokens up to and including the next EndElement,
// returning the concatenated character data seen along the way.
func textOf(dec *xml.Decoder) string {
	var sb strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return sb.String()
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return strings.TrimSpace(sb.String())
			}
			depth--
		}
	}
}

func parseInstant(s string, errs *util.ErrorLogger) temporal.TimeInstant {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		errs.ErrorString("malformed time instant %q", s)
		return 0
	}
	return temporal.TimeInstant(n)
}

func parseAvailability(dec *xml.Decoder, errs *util.ErrorLogger) ingest.RawAvailability {
	var a ingest.RawAvailability
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return a
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch localName(t.Name) {
			case "lower":
				a.AltRange.LowerAlt = parseFL(textOf(dec), errs)
				a.AltRange.LowerMode = altitude.QNH
			case "upper":
				a.AltRange.UpperAlt = parseFL(textOf(dec), errs)
				a.AltRange.UpperMode = altitude.QNH
			case "hostAirspace":
				a.HostAirspaceIdents = append(a.HostAirspaceIdents, textOf(dec))
			case "cdrNum":
				n, err := strconv.Atoi(textOf(dec))
				if err != nil || n < 1 || n > 3 {
					errs.ErrorString("cdr_num out of {1,2,3}: %v", n)
				} else {
					a.CDRNum = n
				}
			case "direction":
				if textOf(dec) == "backward" {
					a.Direction = altitude.Backward
				} else {
					a.Direction = altitude.Forward
				}
			default:
				depth++
			}
		case xml.EndElement:
			if depth == 0 {
				return a
			}
			depth--
		}
	}
}

func parseActivation(dec *xml.Decoder, errs *util.ErrorLogger) ingest.RawActivation {
	var a ingest.RawActivation
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return a
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch localName(t.Name) {
			case "lower":
				a.AltRange.LowerAlt = parseFL(textOf(dec), errs)
				a.AltRange.LowerMode = altitude.QNH
			case "upper":
				a.AltRange.UpperAlt = parseFL(textOf(dec), errs)
				a.AltRange.UpperMode = altitude.QNH
			case "hostAirspace":
				a.HostAirspaceIdents = append(a.HostAirspaceIdents, textOf(dec))
			case "status":
				if textOf(dec) == "invalid" {
					a.Status = aup.StatusInvalid
				} else {
					a.Status = aup.StatusActive
				}
			default:
				depth++
			}
		case xml.EndElement:
			if depth == 0 {
				return a
			}
			depth--
		}
	}
}

func parseFL(s string, errs *util.ErrorLogger) int32 {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		errs.ErrorString("malformed flight level %q", s)
		return 0
	}
	return int32(n)
}

type featureBuilder struct {
	kind   temporal.ObjectKind
	slices []ingest.FeatureSlice
}

func newFeatureBuilder(kind temporal.ObjectKind) *featureBuilder {
	return &featureBuilder{kind: kind}
}

func (b *featureBuilder) build() ingest.Feature {
	return ingest.Feature{Kind: b.kind, Slices: b.slices}
}

type sliceBuilder struct {
	interp         ingest.Interpretation
	ident          string
	airspaceType   string
	route          string
	start, end     string
	validStart     temporal.TimeInstant
	validEnd       temporal.TimeInstant
	availabilities []ingest.RawAvailability
	activation     *ingest.RawActivation
}

func newSliceBuilder(interpretation string) *sliceBuilder {
	interp := ingest.Baseline
	switch interpretation {
	case "permdelta":
		interp = ingest.PermDelta
	case "tempdelta":
		interp = ingest.TempDelta
	case "snapshot":
		interp = ingest.Snapshot
	}
	return &sliceBuilder{interp: interp}
}

func (b *sliceBuilder) build() ingest.FeatureSlice {
	return ingest.FeatureSlice{
		Interval:       temporal.TimeInterval{Start: b.validStart, End: b.validEnd},
		Interpretation: b.interp,
		Ident:          b.ident,
		AirspaceType:   b.airspaceType,
		Route:          b.route,
		Start:          b.start,
		End:            b.end,
		Availabilities: b.availabilities,
		Activation:     b.activation,
	}
}
