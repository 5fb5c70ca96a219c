// Package lang implements the spawn construct language: parsing, scope
// resolution, Go code generation, direct interpretation, and canonical
// formatting.
//
// A construct is an ordered list of entity forms and injected code
// blocks. Entity forms spawn entities with components, optionally bind
// the resulting handle to a name, chain post-creation extensions, and
// nest isolated children groups:
//
//	top-level  := (entity-form | code-block | flow)*
//	entity-form:= [parent '>'] [name ['+']] '(' components ')' extension* childgroup* ';'
//	components := (expr (',' expr)*)?
//	extension  := '.' ( ident '(' args ')' | '(' args ')' | '{' stmts '}' )
//	childgroup := '.[' (entity-form | code-block | flow)* ']'
//	code-block := '{' stmts '}' ';'
//	flow       := 'if' expr body ('else' (flow | body))?
//	            | 'for' ident 'in' expr body
//	            | 'while' expr body
//
// Names bind after the entity's whole form completes, so an entity is
// never visible from inside its own definition. A children group opens a
// fresh scope frame: names from enclosing scopes remain visible, names
// from sibling groups never are, and forward references do not resolve.
// References that fall through every frame pass to the surrounding host
// context unchecked; insertion targets are the exception and must be
// local.
//
// Component expressions, extension arguments, and flow conditions are
// opaque: generation forwards their text verbatim into the output, and
// interpretation evaluates them with the expression engine.
package lang
