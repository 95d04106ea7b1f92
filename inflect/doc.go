// Package inflect converts identifiers between naming conventions and
// pluralizes English nouns. Generators use it from templates (through the
// renderer's helper functions) and from manifest argument transforms.
//
//	inflect.Pascal("user_name")   // UserName
//	inflect.Camel("user_name")    // userName
//	inflect.Snake("HTTPServer")   // http_server
//	inflect.Kebab("BlogPost")     // blog-post
//	inflect.Pluralize("category") // categories
package inflect
