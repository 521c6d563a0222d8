package gen

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/valobj/schema"
)

// Contract is the emission contract of one class: every member plan the
// renderer has to emit, keyed by member kind. A kind that is absent from
// Members must not be rendered.
type Contract struct {
	// Class is the class name.
	Class string `json:"class" yaml:"class" msgpack:"class"`
	// Access is the declared accessibility of the class.
	Access schema.AccessLevel `json:"access" yaml:"access" msgpack:"access"`
	// Comment of the class.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty" msgpack:"comment,omitempty"`
	// Properties holds every property of the class in declaration order,
	// computed ones included, so the renderer can declare them.
	Properties []*Property `json:"properties" yaml:"properties" msgpack:"properties"`
	// Members holds the plan of every member to emit.
	Members Members `json:"members" yaml:"members" msgpack:"members"`
	// AllowCustomConstructors surfaces the toggle to renderers that need to
	// tolerate a user-authored constructor. The engine does not enforce it.
	AllowCustomConstructors bool `json:"allow_custom_constructors,omitempty" yaml:"allow_custom_constructors,omitempty" msgpack:"allow_custom_constructors,omitempty"`
	// Diagnostics are the non-fatal findings about the class options.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
}

// Members maps member kinds to their plans.
type Members map[MemberKind]*MemberPlan

var (
	_ msgpack.CustomEncoder = Members(nil)
	_ msgpack.CustomDecoder = (*Members)(nil)
)

// Kinds returns the kinds of m in canonical order. Kinds outside the
// vocabulary come last, sorted by name.
func (m Members) Kinds() []MemberKind {
	kinds := make([]MemberKind, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	rank := func(k MemberKind) int {
		if i := slices.Index(MemberKinds(), k); i >= 0 {
			return i
		}
		return len(planners)
	}
	slices.SortFunc(kinds, func(a, b MemberKind) int {
		if c := cmp.Compare(rank(a), rank(b)); c != 0 {
			return c
		}
		return strings.Compare(string(a), string(b))
	})
	return kinds
}

// EncodeMsgpack writes the entries in canonical kind order. The encoder only
// sorts maps keyed by the plain string type, so MemberKind keys would
// otherwise come out in map iteration order.
func (m Members) EncodeMsgpack(enc *msgpack.Encoder) error {
	if m == nil {
		return enc.EncodeNil()
	}
	if err := enc.EncodeMapLen(len(m)); err != nil {
		return err
	}
	for _, k := range m.Kinds() {
		if err := enc.EncodeString(string(k)); err != nil {
			return err
		}
		if err := enc.Encode(m[k]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (m *Members) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n == -1 {
		*m = nil
		return nil
	}
	members := make(Members, n)
	for range n {
		k, err := dec.DecodeString()
		if err != nil {
			return err
		}
		var p *MemberPlan
		if err := dec.Decode(&p); err != nil {
			return err
		}
		members[MemberKind(k)] = p
	}
	*m = members
	return nil
}

// Plan returns the plan of the given member kind.
func (c *Contract) Plan(kind MemberKind) (*MemberPlan, bool) {
	p, ok := c.Members[kind]
	return p, ok
}

// Has reports whether the member kind is to be rendered.
func (c *Contract) Has(kind MemberKind) bool {
	_, ok := c.Members[kind]
	return ok
}

// Kinds returns the kinds present in the contract, in canonical order.
func (c *Contract) Kinds() []MemberKind {
	return c.Members.Kinds()
}

// Fields returns the non-computed properties in declaration order.
func (c *Contract) Fields() []*Property {
	return planFields(c.Properties)
}

// EncodeJSON returns the indented JSON encoding of the contract.
// Map keys are sorted, so equal contracts encode to equal bytes.
func (c *Contract) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// EncodeYAML encodes the contract as a YAML document.
func (c *Contract) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeMsgpack encodes the contract as MessagePack. Map entries are
// written in a fixed order, so equal contracts encode to equal bytes.
func (c *Contract) EncodeMsgpack() ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeMsgpack decodes a contract encoded with EncodeMsgpack.
func DecodeMsgpack(buf []byte) (*Contract, error) {
	c := &Contract{}
	if err := msgpack.Unmarshal(buf, c); err != nil {
		return nil, err
	}
	return c, nil
}

// contractNamespace is the UUID namespace of contract fingerprints.
var contractNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/syssam/valobj/contract"))

// Fingerprint returns a name-based UUID derived from the JSON encoding of
// the contract. Equal contracts have equal fingerprints.
func (c *Contract) Fingerprint() (uuid.UUID, error) {
	buf, err := json.Marshal(c)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.NewSHA1(contractNamespace, buf), nil
}
