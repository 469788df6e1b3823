// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"github.com/SoftbearStudios/cosmic/server/world"
	jsoniter "github.com/json-iterator/go"
	"reflect"
	"sync"
	"unsafe"
)

// Make sure functions get run first
var json = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	// Encoders
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(Message{}).String(), encodeMessage, neverEmpty)
	jsoniter.RegisterFieldEncoderFunc(reflect.TypeOf(PlayerDied{}).String(), "KillerID", encodeNullablePlayerID, neverEmpty)

	// Decoders
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(Message{}).String(), decodeMessage)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(world.Vec3f{}).String(), decodeVec3f)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       true,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

func encodeMessage(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	message := (*Message)(ptr)
	stream.WriteVal(message.messageJSON())
}

// Writes null instead of an empty string.
func encodeNullablePlayerID(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	id := *(*world.PlayerID)(ptr)
	if id == world.PlayerIDInvalid {
		stream.WriteNil()
		return
	}
	stream.WriteString(string(id))
}

// Clients may send null or omit components (e.g. before their first frame rendered).
// Missing or null components are zero.
func decodeVec3f(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	vec := (*world.Vec3f)(ptr)
	*vec = world.Vec3f{}

	if iter.WhatIsNext() == jsoniter.NilValue {
		iter.Skip()
		return
	}

	iter.ReadObjectCB(func(i *jsoniter.Iterator, field string) bool {
		var component *float32
		switch field {
		case "x":
			component = &vec.X
		case "y":
			component = &vec.Y
		case "z":
			component = &vec.Z
		default:
			i.Skip()
			return true
		}

		if i.WhatIsNext() == jsoniter.NilValue {
			i.Skip()
		} else {
			*component = i.ReadFloat32()
		}
		return true
	})
}

// Buffers large enough to hold most inbounds
var decodeMessagePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 256)
		return &buf
	},
}

func decodeMessage(ptr unsafe.Pointer, topLevelIter *jsoniter.Iterator) {
	bufPtr := decodeMessagePool.Get().(*[]byte)

	// Read bytes so can read twice
	messageBytes := topLevelIter.SkipAndAppendBytes(*bufPtr)

	// Pool iterator with previous pool
	pool := topLevelIter.Pool()
	iter := pool.BorrowIterator(messageBytes)
	defer pool.ReturnIterator(iter)

	// Interface of *inbound
	var in interface{}

	// Doesn't have to read twice if type is first field
	// If type is found c is > 0
	for c := 0; c < 3; c++ {
		iter.ResetBytes(messageBytes)
		iter.ReadObjectCB(func(i *jsoniter.Iterator, field string) bool {
			switch field {
			case "type":
				// Already read
				if in != nil {
					i.Skip()
					return true
				}

				messageTypeBytes := i.ReadStringAsSlice()
				inboundType, ok := inboundMessageTypes[messageType(messageTypeBytes)]
				if !ok {
					inboundType = reflect.TypeOf(InvalidInbound{})
				}
				in = reflect.New(inboundType).Interface()

				if !ok {
					in.(*InvalidInbound).messageType = messageType(messageTypeBytes)
				}

				c++
			case "data":
				// Type not found yet
				if c == 0 {
					i.Skip()
					return true
				}

				if _, invalid := in.(*InvalidInbound); invalid {
					i.Skip()
				} else {
					i.ReadVal(in)
				}
				c++
				return false // Finished
			default:
				i.Skip()
			}
			return true
		})

		if err := iter.Error; err != nil {
			topLevelIter.Error = err
			return
		}

		// No message type
		if c == 0 {
			topLevelIter.Error = errors.New("no inbound message type")
			return
		}
	}

	// Pool messageBytes
	*bufPtr = messageBytes[:0]
	decodeMessagePool.Put(bufPtr)

	// Store data
	message := (*Message)(ptr)
	message.Data = reflect.Indirect(reflect.ValueOf(in)).Interface()
}
