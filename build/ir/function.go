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

package ir

import (
	"fmt"
	"strings"

	"github.com/cordy-lang/cordy/base/uname"
	"github.com/pkg/errors"
)

// ErrVerify is returned when a function is not well formed.
var ErrVerify = errors.New("function verification failed")

// Block is a basic block: a sequence of instructions ending with a terminator.
type Block struct {
	name   string
	fn     *Function
	instrs []*Instr
}

// Name of the block.
func (b *Block) Name() string { return b.name }

// Parent returns the function owning the block.
func (b *Block) Parent() *Function { return b.fn }

// Instrs returns the instructions of the block.
func (b *Block) Instrs() []*Instr { return b.instrs }

// Terminated returns true if the block ends with a terminator.
func (b *Block) Terminated() bool {
	return len(b.instrs) > 0 && b.instrs[len(b.instrs)-1].op.IsTerminator()
}

// Function is a function of a module. A function without blocks is a declaration.
type Function struct {
	name   string
	sig    *FuncType
	params []*Param
	blocks []*Block
	module *Module
	names  *uname.Unique
}

// Name of the function.
func (f *Function) Name() string { return f.name }

// Type returns the signature of the function.
func (f *Function) Type() Type { return f.sig }

// Signature returns the signature of the function.
func (f *Function) Signature() *FuncType { return f.sig }

// Ref returns the name of the function used in a call.
func (f *Function) Ref() string { return "@" + f.name }

// Params returns the parameters of the function.
func (f *Function) Params() []*Param { return f.params }

// Blocks returns the basic blocks of the function.
func (f *Function) Blocks() []*Block { return f.blocks }

// HasBody returns true if at least one basic block has been appended to the function.
func (f *Function) HasBody() bool { return len(f.blocks) > 0 }

// Module returns the module of the function or nil if the function has been erased.
func (f *Function) Module() *Module { return f.module }

// AppendBlock appends a new basic block to the function.
func (f *Function) AppendBlock(name string) *Block {
	b := &Block{name: f.names.Name(name), fn: f}
	f.blocks = append(f.blocks, b)
	return b
}

// EraseFromParent removes the function from its module.
func (f *Function) EraseFromParent() {
	if f.module == nil {
		return
	}
	f.module.funcs.Delete(f.name)
	f.module = nil
}

// DropBody removes the basic blocks of the function, leaving a declaration.
func (f *Function) DropBody() {
	f.blocks = nil
}

// Verify checks that every block ends with exactly one terminator
// and that returned values match the result type of the function.
func (f *Function) Verify() error {
	for _, b := range f.blocks {
		if !b.Terminated() {
			return errors.Wrapf(ErrVerify, "%s: block %s does not end with a terminator", f.name, b.name)
		}
		for i, in := range b.instrs {
			if in.op.IsTerminator() && i != len(b.instrs)-1 {
				return errors.Wrapf(ErrVerify, "%s: terminator in the middle of block %s", f.name, b.name)
			}
			if in.op != OpRet {
				continue
			}
			if err := f.verifyRet(in); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Function) verifyRet(in *Instr) error {
	if f.sig.Result == VoidType {
		if len(in.operands) != 0 {
			return errors.Wrapf(ErrVerify, "%s: void function returns a value", f.name)
		}
		return nil
	}
	if len(in.operands) != 1 {
		return errors.Wrapf(ErrVerify, "%s: missing return value of type %s", f.name, f.sig.Result)
	}
	if got := in.operands[0].Type(); !Equal(got, f.sig.Result) {
		return errors.Wrapf(ErrVerify, "%s: returns %s but the function result is %s", f.name, got, f.sig.Result)
	}
	return nil
}

func (f *Function) String() string {
	var b strings.Builder
	params := make([]string, len(f.params))
	for i, p := range f.params {
		if f.HasBody() {
			params[i] = operandString(p)
		} else {
			params[i] = p.typ.String()
		}
	}
	if !f.HasBody() {
		fmt.Fprintf(&b, "declare %s @%s(%s)\n", f.sig.Result, f.name, strings.Join(params, ", "))
		return b.String()
	}
	fmt.Fprintf(&b, "define %s @%s(%s) {\n", f.sig.Result, f.name, strings.Join(params, ", "))
	for _, blk := range f.blocks {
		fmt.Fprintf(&b, "%s:\n", blk.name)
		for _, in := range blk.instrs {
			fmt.Fprintf(&b, "  %s\n", in)
		}
	}
	b.WriteString("}\n")
	return b.String()
}
