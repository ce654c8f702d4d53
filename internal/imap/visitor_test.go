package imap

import "testing"

func TestWalkPreOrder(t *testing.T) {
	raw := `(("TEXT" "PLAIN" ("CHARSET" "US-ASCII") NIL NIL "7BIT" 1152 23) ("TEXT" "PLAIN" ("CHARSET" "US-ASCII" "NAME" "cc.diff") "<960723163407.20117h@cac.washington.edu>" "Compiler diff" "BASE64" 4554 73) "MIXED")`
	root, err := ParseBodyStructure(raw)
	if err != nil {
		t.Fatalf("ParseBodyStructure: %v", err)
	}

	var visited []string
	Walk(root, VisitorFunc(func(n *Node, _ any) {
		visited = append(visited, n.PartNo)
	}), nil)

	want := []string{"", "1", "2"}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}
}

func TestWalkNilRootIsNoop(t *testing.T) {
	called := false
	Walk(nil, VisitorFunc(func(n *Node, _ any) { called = true }), nil)
	if called {
		t.Error("expected Walk(nil, ...) not to invoke the visitor")
	}
}

func TestAttachmentVisitorFindsDispositionFilename(t *testing.T) {
	raw := `("APPLICATION" "PDF" NIL NIL NIL "BASE64" 81920 NIL ("attachment" ("FILENAME" "report.pdf")) NIL)`
	root, err := ParseBodyStructure(raw)
	if err != nil {
		t.Fatalf("ParseBodyStructure: %v", err)
	}

	state := &AttachmentState{}
	Walk(root, AttachmentVisitor(), state)

	if len(state.Attachments) != 1 {
		t.Fatalf("len(Attachments) = %d, want 1", len(state.Attachments))
	}
	att := state.Attachments[0]
	if att.FileName != "report.pdf" {
		t.Errorf("FileName = %q, want report.pdf", att.FileName)
	}
}

func TestAttachmentVisitorFindsNonTextBase64WithoutDisposition(t *testing.T) {
	raw := `("IMAGE" "PNG" NIL NIL NIL "BASE64" 2000)`
	root, err := ParseBodyStructure(raw)
	if err != nil {
		t.Fatalf("ParseBodyStructure: %v", err)
	}

	state := &AttachmentState{}
	Walk(root, AttachmentVisitor(), state)

	if len(state.Attachments) != 1 {
		t.Fatalf("len(Attachments) = %d, want 1 (non-text base64 should count as an attachment)", len(state.Attachments))
	}
}

func TestAttachmentVisitorSkipsPlainText(t *testing.T) {
	raw := `("TEXT" "PLAIN" NIL NIL NIL "7BIT" 100 5)`
	root, err := ParseBodyStructure(raw)
	if err != nil {
		t.Fatalf("ParseBodyStructure: %v", err)
	}

	state := &AttachmentState{}
	Walk(root, AttachmentVisitor(), state)

	if len(state.Attachments) != 0 {
		t.Errorf("len(Attachments) = %d, want 0", len(state.Attachments))
	}
}
