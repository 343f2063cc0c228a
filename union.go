// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package layout

// Discriminator reads and writes a union's variant tag (§4.8). Most callers
// never implement this directly: [NewPrefixDiscriminator] and
// [NewExternalDiscriminator] cover the two common forms; a caller may also
// supply an opaque, pre-built Discriminator of its own.
type Discriminator interface {
	ReadTag(buf []byte, offset int) (int64, error)
	WriteTag(tag int64, buf []byte, offset int) error
	Property() string
}

// prefixDiscriminator is discriminator construction form 1: a plain
// integer leaf physically stored at the union's start.
type prefixDiscriminator struct{ inner Int }

// NewPrefixDiscriminator wraps an unsigned integer leaf as a discriminator
// stored at the union's own start (§4.8, form 1). If property is "", it
// defaults to "variant".
func NewPrefixDiscriminator(width int, littleEndian bool, property string) Discriminator {
	if property == "" {
		property = "variant"
	}
	return prefixDiscriminator{inner: NewInt(width, false, littleEndian, property)}
}

func (p prefixDiscriminator) ReadTag(buf []byte, offset int) (int64, error) {
	v, err := p.inner.Decode(buf, offset)
	if err != nil {
		return 0, err
	}
	n, _ := toInt64(v)
	return n, nil
}

func (p prefixDiscriminator) WriteTag(tag int64, buf []byte, offset int) error {
	_, err := p.inner.Encode(tag, buf, offset)
	return err
}

func (p prefixDiscriminator) Property() string { return p.inner.Property() }

// externalDiscriminator is discriminator construction form 2: the tag lives
// outside the union's own bytes.
type externalDiscriminator struct {
	ext      ExternalLayout
	property string
}

// NewExternalDiscriminator wraps a count-valued external layout as a
// discriminator whose tag is stored elsewhere (§4.8, form 2).
func NewExternalDiscriminator(ext ExternalLayout, property string) Discriminator {
	if !ext.IsCount() {
		panic(schemaErr("external discriminator must be count-valued"))
	}
	if property == "" {
		property = ext.Property()
	}
	if property == "" {
		property = "variant"
	}
	return externalDiscriminator{ext: ext, property: property}
}

func (e externalDiscriminator) ReadTag(buf []byte, offset int) (int64, error) {
	v, err := e.ext.Decode(buf, offset)
	if err != nil {
		return 0, err
	}
	n, _ := toInt64(v)
	return n, nil
}

func (e externalDiscriminator) WriteTag(tag int64, buf []byte, offset int) error {
	_, err := e.ext.Encode(tag, buf, offset)
	return err
}

func (e externalDiscriminator) Property() string { return e.property }

// VariantChooser infers which registered variant a source value belongs to
// (§4.8, getSourceVariant). useDefault is true when the union's default
// layout should be used instead of any specific variant.
type VariantChooser func(u *Union, src any) (variant *VariantLayout, useDefault bool, err error)

// DefaultChooser implements the four ordered rules from §4.8. A custom
// [VariantChooser] can delegate to it for the cases it doesn't want to
// special-case (§9, "replaceable variant chooser").
func DefaultChooser(u *Union, src any) (*VariantLayout, bool, error) {
	get, ok := asRecord(src)
	if !ok {
		return nil, false, typeErr("expected a record-like value to choose a union variant, got %T", src)
	}

	discrProp := u.discr.Property()
	tagVal, hasTag := get(discrProp)

	if hasTag && u.defaultLayout != nil {
		if _, hasContent := get(u.defaultProperty); hasContent {
			return nil, true, nil
		}
	}

	if hasTag {
		tag, ok := toInt64(tagVal)
		if ok {
			if v, ok := u.variants[tag]; ok {
				if v.inner == nil {
					return v, false, nil
				}
				if _, has := get(v.property); has {
					return v, false, nil
				}
			}
		}
	}

	var match *VariantLayout
	matches := 0
	for _, tag := range u.order {
		v := u.variants[tag]
		if _, has := get(v.property); has && v.property != "" {
			match = v
			matches++
		}
	}
	if matches == 1 {
		return match, false, nil
	}

	return nil, false, ambiguousVariantErr("cannot uniquely identify a union variant from the given value")
}

// Union is a tagged-union dispatcher (§4.8): a discriminator source, a
// registry of variants keyed by tag, an optional default fallback, and a
// replaceable rule for inferring a variant from a structured input value.
type Union struct {
	property                string
	discr                   Discriminator
	usesPrefixDiscriminator bool
	prefixSpan              int
	defaultLayout           Layout
	defaultProperty         string
	variants                map[int64]*VariantLayout
	order                   []int64
	span                    int // spanDynamic if no default layout was ever made consistent across variants
	chooser                 VariantChooser
	bound                   *boundType
}

var _ Layout = (*Union)(nil)

func (u *Union) setBoundType(bt *boundType) { u.bound = bt }

// UnionBuilder accumulates variant registrations and produces an immutable
// [Union] (§9, "Mutable registration post-construction").
type UnionBuilder struct {
	u   *Union
	err error
}

// NewUnion starts a union builder for the given discriminator. property
// names the union as a whole when it appears inside a containing structure.
func NewUnion(discr Discriminator, usesPrefixDiscriminator bool, property string) *UnionBuilder {
	prefixSpan := 0
	if usesPrefixDiscriminator {
		if pd, ok := discr.(prefixDiscriminator); ok {
			prefixSpan = pd.inner.Span()
		}
	}
	return &UnionBuilder{u: &Union{
		property:                property,
		discr:                   discr,
		usesPrefixDiscriminator: usesPrefixDiscriminator,
		prefixSpan:              prefixSpan,
		defaultProperty:         "content",
		variants:                map[int64]*VariantLayout{},
		span:                    spanDynamic,
	}}
}

// WithDefault sets the union's default (fallback) layout, which must be
// fixed-span. property names the field the decoded default value is stored
// under; "" defaults to "content".
func (b *UnionBuilder) WithDefault(l Layout, property string) *UnionBuilder {
	if b.err != nil {
		return b
	}
	if !isFixed(l.Span()) {
		b.err = schemaErr("union default layout must be fixed-span")
		return b
	}
	if property == "" {
		property = "content"
	}
	b.u.defaultLayout = l
	b.u.defaultProperty = property
	b.u.span = b.u.prefixSpan + l.Span()
	return b
}

// AddVariant registers a variant under tag, with an optional inner layout
// (nil for a tag-only variant) and property name.
func (b *UnionBuilder) AddVariant(tag int64, inner Layout, property string) *UnionBuilder {
	if b.err != nil {
		return b
	}
	if _, dup := b.u.variants[tag]; dup {
		b.err = schemaErr("union %q already has a variant registered for tag %d", b.u.property, tag)
		return b
	}
	if property != "" && property == b.u.defaultProperty && b.u.defaultLayout == nil {
		// §9 open question: a registered default property "content" can
		// collide with a variant property of the same name; rejected here
		// at build time rather than silently resolved by first-match.
		b.err = schemaErr("variant property %q collides with the union's default-layout content property", property)
		return b
	}

	if b.u.defaultLayout != nil {
		innerSpan := 0
		if inner != nil {
			if !isFixed(inner.Span()) {
				b.err = schemaErr("variant %d's inner layout must be fixed-span when the union has a default layout", tag)
				return b
			}
			innerSpan = inner.Span()
		}
		if b.u.prefixSpan+innerSpan > b.u.defaultLayout.Span() {
			b.err = schemaErr("variant %d (span %d) exceeds the union's default-layout span %d", tag, b.u.prefixSpan+innerSpan, b.u.defaultLayout.Span())
			return b
		}
	} else {
		total := b.u.prefixSpan
		fixed := true
		if inner != nil {
			if isFixed(inner.Span()) {
				total += inner.Span()
			} else {
				fixed = false
			}
		}
		if len(b.u.variants) == 0 {
			if fixed {
				b.u.span = total
			}
		} else if !fixed || b.u.span != total {
			b.u.span = spanDynamic
		}
	}

	v := &VariantLayout{tag: tag, inner: inner, property: property, union: b.u}
	b.u.variants[tag] = v
	b.u.order = append(b.u.order, tag)
	return b
}

// Build finalizes the union, or returns the first schema error encountered.
func (b *UnionBuilder) Build() (*Union, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.u, nil
}

func (u *Union) Span() int        { return u.span }
func (u *Union) Property() string { return u.property }

func (u *Union) Replicate(newProperty string) Layout {
	cp := *u
	cp.property = newProperty
	return &cp
}

func (u *Union) MakeDestinationObject() any { return recordDestination(u.bound) }

func (u *Union) FromArray(values []any) (any, bool) { return nil, false }

// SetChooser installs a replacement [VariantChooser] (§9).
func (u *Union) SetChooser(c VariantChooser) { u.chooser = c }

// GetSourceVariant infers which variant src belongs to (§4.8).
func (u *Union) GetSourceVariant(src any) (variant *VariantLayout, useDefault bool, err error) {
	chooser := u.chooser
	if chooser == nil {
		chooser = DefaultChooser
	}
	return chooser(u, src)
}

// Variant returns the registered [VariantLayout] for tag, if any.
func (u *Union) Variant(tag int64) (*VariantLayout, bool) {
	v, ok := u.variants[tag]
	return v, ok
}

func (u *Union) getVariant(buf []byte, offset int) (*VariantLayout, int64, error) {
	tag, err := u.discr.ReadTag(buf, offset)
	if err != nil {
		return nil, 0, err
	}
	v, ok := u.variants[tag]
	if !ok {
		return nil, tag, unknownVariantErr(offset, tag)
	}
	return v, tag, nil
}

func (u *Union) GetSpan(buf []byte, offset int) (int, error) {
	if u.defaultLayout != nil {
		return u.span, nil
	}
	if buf == nil {
		return 0, unresolvedSpanErr("union %q is variable-span", u.property)
	}
	v, _, err := u.getVariant(buf, offset)
	if err != nil {
		return 0, err
	}
	return v.GetSpan(buf, offset)
}

// Decode reads the tag and delegates to the matching variant, or to the
// default layout, or fails with an unknown-variant error (§4.8).
func (u *Union) Decode(buf []byte, offset int) (any, error) {
	tag, err := u.discr.ReadTag(buf, offset)
	if err != nil {
		return nil, err
	}
	if v, ok := u.variants[tag]; ok {
		return v.Decode(buf, offset)
	}
	if u.defaultLayout != nil {
		contentOffset := offset
		if u.usesPrefixDiscriminator {
			contentOffset += u.prefixSpan
		}
		content, err := u.defaultLayout.Decode(buf, contentOffset)
		if err != nil {
			return nil, err
		}
		dst := u.MakeDestinationObject()
		set, _ := settableRecord(dst)
		set(u.discr.Property(), tag)
		set(u.defaultProperty, content)
		return dst, nil
	}
	return nil, unknownVariantErr(offset, tag)
}

// Encode only handles the default-layout path (§4.8); to emit a specific
// variant, encode through that [VariantLayout] directly.
func (u *Union) Encode(value any, buf []byte, offset int) (int, error) {
	if u.defaultLayout == nil {
		return 0, schemaErr("union %q has no default layout; encode through a specific VariantLayout instead", u.property)
	}
	get, ok := asRecord(value)
	if !ok {
		return 0, typeErr("expected a record-like value to encode union %q, got %T", u.property, value)
	}
	tagVal, present := get(u.discr.Property())
	if !present {
		return 0, typeErr("union %q is missing discriminator property %q", u.property, u.discr.Property())
	}
	tag, ok := toInt64(tagVal)
	if !ok {
		return 0, typeErr("union %q discriminator must be an integer, got %T", u.property, tagVal)
	}

	total := 0
	if err := u.discr.WriteTag(tag, buf, offset); err != nil {
		return 0, err
	}
	if u.usesPrefixDiscriminator {
		total += u.prefixSpan
	}

	contentVal, present := get(u.defaultProperty)
	if !present {
		return 0, typeErr("union %q is missing default-layout content property %q", u.property, u.defaultProperty)
	}
	n, err := u.defaultLayout.Encode(contentVal, buf, offset+total)
	if err != nil {
		return 0, err
	}
	total += n
	return total, nil
}

// VariantLayout binds a numeric tag, an optional inner layout, and a
// property name to a containing [Union] (§4.8). It holds a non-owning
// back-reference to the union so its Encode can write the discriminator
// (§9, "cycle prevention").
type VariantLayout struct {
	tag      int64
	inner    Layout
	property string
	union    *Union
	bound    *boundType
}

var _ Layout = (*VariantLayout)(nil)

// Tag returns the variant's discriminator value.
func (v *VariantLayout) Tag() int64 { return v.tag }

func (v *VariantLayout) Property() string { return v.property }

func (v *VariantLayout) Span() int {
	if v.union.defaultLayout != nil {
		return v.union.span
	}
	prefix := 0
	if v.union.usesPrefixDiscriminator {
		prefix = v.union.prefixSpan
	}
	if v.inner == nil {
		return prefix
	}
	if isFixed(v.inner.Span()) {
		return prefix + v.inner.Span()
	}
	return spanDynamic
}

func (v *VariantLayout) Replicate(newProperty string) Layout {
	cp := *v
	cp.property = newProperty
	return &cp
}

func (v *VariantLayout) MakeDestinationObject() any { return recordDestination(v.bound) }

func (v *VariantLayout) FromArray(values []any) (any, bool) {
	dst := v.MakeDestinationObject()
	set, ok := settableRecord(dst)
	if !ok {
		return nil, false
	}
	if v.inner == nil {
		return dst, true
	}
	innerVal, ok := v.inner.FromArray(values)
	if !ok {
		return nil, false
	}
	if v.property != "" {
		set(v.property, innerVal)
	}
	return dst, true
}

func (v *VariantLayout) prefixSpan() int {
	if v.union.usesPrefixDiscriminator {
		return v.union.prefixSpan
	}
	return 0
}

func (v *VariantLayout) GetSpan(buf []byte, offset int) (int, error) {
	prefix := v.prefixSpan()
	if v.inner == nil {
		return prefix, nil
	}
	n, err := v.inner.GetSpan(buf, offset+prefix)
	if err != nil {
		return 0, err
	}
	return prefix + n, nil
}

// Decode skips the prefix-discriminator span, if any, decodes the inner
// layout, and wraps the result in a record under the variant's property.
// Pure-tag variants decode to an empty record (§4.8).
func (v *VariantLayout) Decode(buf []byte, offset int) (any, error) {
	dst := v.MakeDestinationObject()
	if v.inner == nil {
		return dst, nil
	}
	payloadOffset := offset + v.prefixSpan()
	inner, err := v.inner.Decode(buf, payloadOffset)
	if err != nil {
		return nil, err
	}
	set, _ := settableRecord(dst)
	if v.property != "" {
		set(v.property, inner)
	}
	return dst, nil
}

// Encode writes the discriminator tag, then (if an inner layout exists)
// encodes src[property] after the prefix span (§4.8).
func (v *VariantLayout) Encode(value any, buf []byte, offset int) (int, error) {
	if err := v.union.discr.WriteTag(v.tag, buf, offset); err != nil {
		return 0, err
	}
	prefix := v.prefixSpan()
	if v.inner == nil {
		return prefix, nil
	}
	get, ok := asRecord(value)
	if !ok {
		return 0, typeErr("expected a record-like value to encode variant %q, got %T", v.property, value)
	}
	content, present := get(v.property)
	if !present {
		return 0, typeErr("missing property %q for variant tag %d", v.property, v.tag)
	}
	n, err := v.inner.Encode(content, buf, offset+prefix)
	if err != nil {
		return 0, err
	}
	return prefix + n, nil
}
