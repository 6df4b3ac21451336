// pkg/ingest/aixm/aixm_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aixm

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/temporal"
	"github.com/mmp/adrcore/pkg/util"
)

const sampleDoc = `<?xml version="1.0"?>
<airspace:EAUPCDRReply xmlns:airspace="urn:eurocontrol:aixm:airspace">
  <adr:parseID ident="LFFF">3f9a1b2c-3e4a-4f9a-8b1a-1a2b3c4d5e6f</adr:parseID>
  <adr:RouteSegment>
    <adr:timeSlice interpretation="tempdelta">
      <adr:route>UL620</adr:route>
      <adr:start>DIK</adr:start>
      <adr:end>LARDI</adr:end>
      <adr:validStart>100</adr:validStart>
      <adr:validEnd>200</adr:validEnd>
      <adr:availability>
        <adr:lower>100</adr:lower>
        <adr:upper>200</adr:upper>
        <adr:hostAirspace>LFFF</adr:hostAirspace>
        <adr:cdrNum>1</adr:cdrNum>
        <adr:direction>forward</adr:direction>
      </adr:availability>
    </adr:timeSlice>
  </adr:RouteSegment>
</airspace:EAUPCDRReply>`

func TestParseRouteSegmentFeature(t *testing.T) {
	var errs util.ErrorLogger
	src, err := Parse(strings.NewReader(sampleDoc), &errs)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if errs.HaveErrors() {
		t.Fatalf("unexpected parse errors: %s", errs.String())
	}

	if id, ok := src.ResolveParseID("LFFF"); !ok || id != uuid.MustParse("3f9a1b2c-3e4a-4f9a-8b1a-1a2b3c4d5e6f") {
		t.Fatalf("parseID not resolved: id=%v ok=%v", id, ok)
	}

	feats := src.Features()
	if len(feats) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(feats))
	}
	f := feats[0]
	if f.Kind != temporal.KindRouteSegment {
		t.Fatalf("expected a RouteSegment feature, got %v", f.Kind)
	}
	if len(f.Slices) != 1 {
		t.Fatalf("expected 1 slice, got %d", len(f.Slices))
	}
	sl := f.Slices[0]
	if sl.Route != "UL620" || sl.Start != "DIK" || sl.End != "LARDI" {
		t.Fatalf("unexpected slice identity: %+v", sl)
	}
	if sl.Interval.Start != 100 || sl.Interval.End != 200 {
		t.Fatalf("unexpected interval: %+v", sl.Interval)
	}
	if len(sl.Availabilities) != 1 || sl.Availabilities[0].CDRNum != 1 {
		t.Fatalf("unexpected availability: %+v", sl.Availabilities)
	}
	if len(sl.Availabilities[0].HostAirspaceIdents) != 1 || sl.Availabilities[0].HostAirspaceIdents[0] != "LFFF" {
		t.Fatalf("unexpected host airspaces: %+v", sl.Availabilities[0])
	}
}

func TestParseToleratesUnknownElements(t *testing.T) {
	doc := `<airspace:EAUPCDRReply xmlns:airspace="urn:eurocontrol:aixm:airspace">
  <adr:RouteSegment>
    <adr:timeSlice interpretation="tempdelta">
      <adr:futureElement><adr:nested>whatever</adr:nested></adr:futureElement>
      <adr:route>UL620</adr:route>
      <adr:start>DIK</adr:start>
      <adr:end>LARDI</adr:end>
    </adr:timeSlice>
  </adr:RouteSegment>
</airspace:EAUPCDRReply>`

	var errs util.ErrorLogger
	src, err := Parse(strings.NewReader(doc), &errs)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(src.Features()) != 1 || src.Features()[0].Slices[0].Route != "UL620" {
		t.Fatalf("unknown element should be skipped without disrupting sibling parsing")
	}
}
