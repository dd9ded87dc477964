// Package xmldoc is the document reader used by every extractor.
//
// A document is loaded completely and turned into a small element tree that supports
// attribute lookup and direct-child queries. No streaming, no XPath.
//
// # Usage
//
//	doc, err := xmldoc.FileReader{}.Load("lore/skills.xml")
//	root, err := doc.RootElement("skills")
//	for _, n := range root.Elements("travelSkill") {
//	    id, ok := n.Attr("identifier")
//	}
package xmldoc
