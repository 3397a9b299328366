// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package registry

import (
	"strconv"
	"strings"

	"github.com/cordy-lang/cordy/build/ir"
	"github.com/cordy-lang/cordy/build/ir/irkind"
	"github.com/pkg/errors"
)

// Metadata keys.
const (
	operatorsKeyPrefix = "cordy.operators."
	operatorKeyPrefix  = "cordy.operator."
	// TypeKeywordsKey lists the keyword types bound by a module as Name:kind.
	TypeKeywordsKey = "cordy.types.keywords"
)

// OperatorsKey returns the metadata key listing the representations of a class.
func OperatorsKey(class Class) string {
	return operatorsKeyPrefix + class.String()
}

// OperatorKey returns the metadata key of a descriptor.
func OperatorKey(class Class, rep string) string {
	return operatorKeyPrefix + class.String() + "." + rep
}

func joinList(l []string) string {
	return strings.Join(l, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// Encode writes a descriptor into the metadata of a module.
// The fields are stored in the order precedence, modules, callee type, callee, predicates.
func Encode(mod *ir.Module, d *Descriptor) {
	mod.AddNamedMetadataOperand(OperatorsKey(d.Class), d.Representation)
	key := OperatorKey(d.Class, d.Representation)
	mod.AddNamedMetadataOperand(key, strconv.Itoa(d.Precedence))
	mod.AddNamedMetadataOperand(key, joinList(d.Modules))
	mod.AddNamedMetadataOperand(key, d.Callee.String())
	mod.AddNamedMetadataOperand(key, d.CalleeName)
	mod.AddNamedMetadataOperand(key, joinList(d.Predicates))
}

func decodeDescriptor(mod *ir.Module, class Class, rep string) (*Descriptor, error) {
	key := OperatorKey(class, rep)
	fields := mod.NamedMetadata(key)
	if len(fields) != 5 {
		return nil, errors.Errorf("module %s: metadata %s has %d fields but want 5", mod.Name(), key, len(fields))
	}
	prec, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, errors.Wrapf(err, "module %s: invalid precedence in %s", mod.Name(), key)
	}
	callee, err := ParseCalleeType(fields[2])
	if err != nil {
		return nil, errors.Wrapf(err, "module %s: %s", mod.Name(), key)
	}
	return &Descriptor{
		Representation: rep,
		Class:          class,
		Precedence:     prec,
		Modules:        splitList(fields[1]),
		Callee:         callee,
		CalleeName:     fields[3],
		Predicates:     splitList(fields[4]),
	}, nil
}

// Decode reads the descriptors stored in the metadata of a module.
func Decode(mod *ir.Module) (*Table, error) {
	t := NewTable()
	for _, class := range []Class{Prefix, Binary, Postfix} {
		for _, rep := range mod.NamedMetadata(OperatorsKey(class)) {
			d, err := decodeDescriptor(mod, class, rep)
			if err != nil {
				return nil, err
			}
			if err := t.Add(d); err != nil {
				return nil, errors.Wrapf(err, "module %s", mod.Name())
			}
		}
	}
	return t, nil
}

// EncodeType writes a keyword type binding into the metadata of a module.
func EncodeType(mod *ir.Module, name string, knd irkind.Kind) {
	mod.AddNamedMetadataOperand(TypeKeywordsKey, name+":"+knd.String())
}

// DecodeTypes reads the keyword type bindings of a module.
func DecodeTypes(mod *ir.Module) (map[string]irkind.Kind, error) {
	types := make(map[string]irkind.Kind)
	for _, entry := range mod.NamedMetadata(TypeKeywordsKey) {
		name, kindName, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, errors.Errorf("module %s: invalid type keyword %q", mod.Name(), entry)
		}
		knd := irkind.KindFromString(kindName)
		if knd == irkind.Invalid {
			return nil, errors.Errorf("module %s: unknown kind %q for type keyword %s", mod.Name(), kindName, name)
		}
		types[name] = knd
	}
	return types, nil
}
