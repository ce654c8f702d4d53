package imap

import "strings"

// Visitor is invoked once per body-structure node during a pre-order
// Walk (spec §4.4). It may mutate userState; the tree itself is never
// modified during a walk.
type Visitor interface {
	Visit(node *Node, userState any)
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(node *Node, userState any)

func (f VisitorFunc) Visit(node *Node, userState any) { f(node, userState) }

// Walk performs a pre-order traversal of root, invoking visitor for
// every node, multipart and leaf alike.
func Walk(root *Node, visitor Visitor, userState any) {
	if root == nil {
		return
	}
	visitor.Visit(root, userState)
	for _, child := range root.Children {
		Walk(child, visitor, userState)
	}
}

// Attachment is one entry recorded by AttachmentVisitor.
type Attachment struct {
	PartNo           string
	Encoding         string
	FileName         string
	CreationDate     string
	ModificationDate string
	Size             string
	MD5              string
}

// AttachmentState is the userState expected by AttachmentVisitor.
type AttachmentState struct {
	Attachments []Attachment
}

// AttachmentVisitor returns the built-in visitor described in spec
// §4.4: it records every leaf whose disposition parameter list
// carries a FILENAME, or whose type is not TEXT and whose encoding is
// BASE64.
func AttachmentVisitor() Visitor {
	return VisitorFunc(func(node *Node, userState any) {
		if node == nil || node.Kind != NodeLeaf {
			return
		}
		state, ok := userState.(*AttachmentState)
		if !ok {
			return
		}

		params := dispositionParams(node.Disposition)
		filename, hasFilename := paramListLookup(params, "FILENAME")
		isBase64 := strings.EqualFold(node.Encoding, "BASE64")
		isNonText := !strings.EqualFold(node.Type, "TEXT")

		if !hasFilename && !(isNonText && isBase64) {
			return
		}

		creationDate, _ := paramListLookup(params, "CREATION-DATE")
		modDate, _ := paramListLookup(params, "MODIFICATION-DATE")

		state.Attachments = append(state.Attachments, Attachment{
			PartNo:           node.PartNo,
			Encoding:         node.Encoding,
			FileName:         filename,
			CreationDate:     creationDate,
			ModificationDate: modDate,
			Size:             node.Size,
			MD5:              node.MD5,
		})
	})
}
