package blocks_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/google/uuid"
)

func TestZeroPayloadsUseEmptyLists(t *testing.T) {
	for _, kind := range blocks.Kinds() {
		props, err := blocks.Zero(kind)
		if err != nil {
			t.Fatalf("Zero(%s): %v", kind, err)
		}
		if props.Kind() != kind {
			t.Fatalf("expected kind %s, got %s", kind, props.Kind())
		}
		switch p := props.(type) {
		case blocks.FAQsProps:
			if p.FAQs == nil || len(p.FAQs) != 0 {
				t.Fatalf("expected empty faqs list, got %#v", p.FAQs)
			}
		case blocks.FeaturesProps:
			if p.FAQs == nil || len(p.FAQs) != 0 {
				t.Fatalf("expected empty features list, got %#v", p.FAQs)
			}
		case blocks.ServicesProps:
			if p.Services == nil || len(p.Services) != 0 {
				t.Fatalf("expected empty services list, got %#v", p.Services)
			}
		}
	}
}

func TestZeroRejectsUnknownKind(t *testing.T) {
	if _, err := blocks.Zero("CarouselBlock"); !errors.Is(err, blocks.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if _, err := blocks.ParseKind(" FAQsBlock "); err != nil {
		t.Fatalf("expected FAQsBlock to parse, got %v", err)
	}
}

func TestFAQsAndFeaturesAreDistinctKinds(t *testing.T) {
	faqs := blocks.FAQsProps{FAQs: []blocks.FAQ{{Question: "Q", Answer: "A"}}}
	features := blocks.FeaturesProps{FAQs: []blocks.FAQ{{Question: "Q", Answer: "A"}}}
	if faqs.Kind() == features.Kind() {
		t.Fatalf("expected distinct kinds, both reported %s", faqs.Kind())
	}
}

func TestListJSONRoundTripPreservesOrderAndIDs(t *testing.T) {
	heroID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	faqID := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	list := blocks.List{
		{ID: heroID, Props: blocks.HeroProps{Title: "ERP Suite", BackgroundImageURL: "/h.png"}},
		{ID: faqID, Props: blocks.FAQsProps{FAQs: []blocks.FAQ{{Question: "Q1", Answer: "A1"}}}},
	}

	raw, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"_id":"00000000-0000-0000-0000-000000000001"`) {
		t.Fatalf("expected _id field in %s", raw)
	}
	if !strings.Contains(string(raw), `"type":"HeroBlock"`) {
		t.Fatalf("expected type field in %s", raw)
	}

	var decoded blocks.List
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := decoded.IDs(); len(got) != 2 || got[0] != heroID || got[1] != faqID {
		t.Fatalf("unexpected ids %v", got)
	}
	hero, ok := decoded[0].Props.(blocks.HeroProps)
	if !ok || hero.Title != "ERP Suite" {
		t.Fatalf("unexpected hero payload %#v", decoded[0].Props)
	}
}

func TestUnknownTagSurvivesRoundTrip(t *testing.T) {
	raw := `[{"_id":"00000000-0000-0000-0000-000000000003","type":"CarouselBlock","props":{"slides":[1,2]}}]`

	var list blocks.List
	if err := list.Scan(raw); err != nil {
		t.Fatalf("scan: %v", err)
	}
	unknown, ok := list[0].Props.(blocks.UnknownProps)
	if !ok {
		t.Fatalf("expected UnknownProps, got %T", list[0].Props)
	}
	if unknown.Kind() != "CarouselBlock" {
		t.Fatalf("expected CarouselBlock kind, got %s", unknown.Kind())
	}
	if err := unknown.Validate(); !errors.Is(err, blocks.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant from Validate, got %v", err)
	}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if !strings.Contains(value.(string), `"slides":[1,2]`) {
		t.Fatalf("expected raw payload preserved, got %s", value)
	}
}

func TestScanNilYieldsEmptyList(t *testing.T) {
	var list blocks.List
	if err := list.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %#v", list)
	}
	raw, _ := json.Marshal(blocks.List(nil))
	if string(raw) != "[]" {
		t.Fatalf("expected [] for nil list, got %s", raw)
	}
}

func TestCloneDoesNotShareNestedSlices(t *testing.T) {
	original := blocks.Block{ID: uuid.New(), Props: blocks.ServicesProps{Services: []blocks.ServiceItem{{Title: "A"}}}}
	cloned := original.Clone()
	cloned.Props.(blocks.ServicesProps).Services[0].Title = "B"
	if original.Props.(blocks.ServicesProps).Services[0].Title != "A" {
		t.Fatalf("expected clone to be independent")
	}
}

func TestCheckIDsRejectsDuplicates(t *testing.T) {
	id := uuid.New()
	list := blocks.List{{ID: id, Props: blocks.HeroProps{}}, {ID: id, Props: blocks.HeroProps{}}}
	if err := list.CheckIDs(); !errors.Is(err, blocks.ErrInvalidProps) {
		t.Fatalf("expected ErrInvalidProps, got %v", err)
	}
}

func TestParsePropsValidatesSchemaAndRules(t *testing.T) {
	props, err := blocks.ParseProps(blocks.KindImage, json.RawMessage(`{"title":"Dashboards","imageUrl":"/d.png","imagePosition":"right"}`))
	if err != nil {
		t.Fatalf("ParseProps: %v", err)
	}
	if props.(blocks.ImageProps).ImagePosition != blocks.ImageRight {
		t.Fatalf("unexpected payload %#v", props)
	}

	cases := []struct {
		name string
		kind blocks.Kind
		raw  string
	}{
		{"unexpected field", blocks.KindHero, `{"title":"x","colour":"red"}`},
		{"wrong type", blocks.KindServices, `{"services":[{"title":1}]}`},
		{"bad position", blocks.KindImage, `{"imagePosition":"center"}`},
		{"negative rank", blocks.KindServices, `{"services":[{"title":"a","rank":-1}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := blocks.ParseProps(tc.kind, json.RawMessage(tc.raw)); !errors.Is(err, blocks.ErrInvalidProps) {
				t.Fatalf("expected ErrInvalidProps, got %v", err)
			}
		})
	}

	if _, err := blocks.ParseProps("CarouselBlock", nil); !errors.Is(err, blocks.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}
