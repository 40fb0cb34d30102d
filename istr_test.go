package sinter

import (
	"testing"
	"unsafe"

	"github.com/coldharbor/sinter/lookuptable"
)

func TestIStrViews(t *testing.T) {
	in := New()
	h, err := in.Intern([]byte("hello"))
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	if h.String() != "hello" {
		t.Fatalf("String() = %q, want %q", h.String(), "hello")
	}
	if string(h.Bytes()) != "hello" {
		t.Fatalf("Bytes() = %q, want %q", h.Bytes(), "hello")
	}
	if h.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", h.Len())
	}
	if !h.IsValid() {
		t.Fatal("interned handle reports invalid")
	}
}

func TestIStrZeroValueIsInvalid(t *testing.T) {
	var h IStr
	if h.IsValid() {
		t.Fatal("zero value IStr reports valid")
	}
}

func TestIStrEqualIsPointerIdentity(t *testing.T) {
	in := New()
	a, _ := in.Intern([]byte("foo"))
	b, _ := in.Intern([]byte("foo"))
	if !a.Equal(b) {
		t.Fatal("two interns of the same bytes produced unequal handles")
	}
	c, _ := in.Intern([]byte("bar"))
	if a.Equal(c) {
		t.Fatal("interns of distinct bytes compared equal")
	}
}

func TestIStrEqualBytes(t *testing.T) {
	in := New()
	h, _ := in.Intern([]byte("content"))
	if !h.EqualBytes([]byte("content")) {
		t.Fatal("EqualBytes false negative")
	}
	if h.EqualBytes([]byte("different")) {
		t.Fatal("EqualBytes false positive")
	}
}

func TestIStrHashAgreesWithBorrowedBytes(t *testing.T) {
	in := New()
	h, _ := in.Intern([]byte("hash me"))
	want := lookuptable.FastHasher.Sum64([]byte("hash me"))
	if h.Hash() != want {
		t.Fatalf("Hash() = %d, want %d", h.Hash(), want)
	}
}

func TestIStrCBytesIsNulTerminated(t *testing.T) {
	in := New()
	h, _ := in.Intern([]byte("nulterm"))
	// The byte immediately after the h.Len() data bytes at CBytes must be
	// zero.
	if h.Len() != uint32(len("nulterm")) {
		t.Fatalf("Len() = %d, want %d", h.Len(), len("nulterm"))
	}
	if nul := *(*byte)(unsafe.Add(h.CBytes(), h.Len())); nul != 0 {
		t.Fatalf("byte after CBytes data = %d, want 0", nul)
	}
}
