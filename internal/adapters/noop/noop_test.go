package noop_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-solutions/internal/adapters/noop"
	"github.com/goliatone/go-solutions/pkg/interfaces"
)

func TestUploaderImplementsInterface(t *testing.T) {
	var _ interfaces.Uploader = noop.Uploader("")
}

func TestUploaderBuildsURL(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		prefix string
		name   string
		folder string
		want   string
	}{
		{prefix: "", name: "Hero Banner.PNG", folder: "solutions", want: "/uploads/solutions/hero-banner.png"},
		{prefix: "https://cdn.example.com/", name: "icon.svg", folder: "/icons/", want: "https://cdn.example.com/icons/icon.svg"},
		{prefix: "/media", name: "logo.png", folder: "", want: "/media/logo.png"},
	}
	for _, tc := range cases {
		got, err := noop.Uploader(tc.prefix).Upload(ctx, strings.NewReader("bytes"), tc.name, tc.folder)
		if err != nil {
			t.Fatalf("upload %q: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestUploaderRejectsEmptyName(t *testing.T) {
	if _, err := noop.Uploader("").Upload(context.Background(), nil, " .png", "x"); !errors.Is(err, noop.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}
