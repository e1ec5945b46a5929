package ir

import "strings"

// Dialect groups operations by IR level.
type Dialect string

const (
	// DialectFIRRTL holds the register-transfer primitives.
	DialectFIRRTL Dialect = "firrtl"
	// DialectHW holds the aggregate-data structural operations.
	DialectHW Dialect = "hw"
	// DialectSV holds the statement-level storage operations.
	DialectSV Dialect = "sv"
	// DialectPipeline holds the static-scheduling operations.
	DialectPipeline Dialect = "pipeline"
)

// OpKind identifies an operation as "dialect.mnemonic". The kind jointly
// selects the operation's inference, verification and canonicalization
// rules.
type OpKind string

// Register-transfer primitives.
const (
	KindAdd OpKind = "firrtl.add"
	KindSub OpKind = "firrtl.sub"
	KindMul OpKind = "firrtl.mul"
	KindDiv OpKind = "firrtl.div"
	KindRem OpKind = "firrtl.rem"
	KindAnd OpKind = "firrtl.and"
	KindOr  OpKind = "firrtl.or"
	KindXor OpKind = "firrtl.xor"

	KindLeq OpKind = "firrtl.leq"
	KindLt  OpKind = "firrtl.lt"
	KindGeq OpKind = "firrtl.geq"
	KindGt  OpKind = "firrtl.gt"
	KindEq  OpKind = "firrtl.eq"
	KindNeq OpKind = "firrtl.neq"

	KindCat   OpKind = "firrtl.cat"
	KindBits  OpKind = "firrtl.bits"
	KindHead  OpKind = "firrtl.head"
	KindTail  OpKind = "firrtl.tail"
	KindPad   OpKind = "firrtl.pad"
	KindShl   OpKind = "firrtl.shl"
	KindShr   OpKind = "firrtl.shr"
	KindDshl  OpKind = "firrtl.dshl"
	KindDshlw OpKind = "firrtl.dshlw"
	KindDshr  OpKind = "firrtl.dshr"
	KindMux   OpKind = "firrtl.mux"

	KindAsSInt          OpKind = "firrtl.as_sint"
	KindAsUInt          OpKind = "firrtl.as_uint"
	KindAsClock         OpKind = "firrtl.as_clock"
	KindAsAsyncReset    OpKind = "firrtl.as_async_reset"
	KindStdIntCast      OpKind = "firrtl.std_int_cast"
	KindAnalogInOutCast OpKind = "firrtl.analog_inout_cast"
	KindAsPassive       OpKind = "firrtl.as_passive"
	KindAsNonPassive    OpKind = "firrtl.as_non_passive"

	KindSubfield  OpKind = "firrtl.subfield"
	KindSubindex  OpKind = "firrtl.subindex"
	KindSubaccess OpKind = "firrtl.subaccess"

	KindConstant     OpKind = "firrtl.constant"
	KindInvalidValue OpKind = "firrtl.invalid_value"
)

// Aggregate-data operations.
const (
	KindStructCreate  OpKind = "hw.struct_create"
	KindStructExtract OpKind = "hw.struct_extract"
	KindStructInject  OpKind = "hw.struct_inject"
	KindStructExplode OpKind = "hw.struct_explode"

	KindArrayCreate OpKind = "hw.array_create"
	KindArrayGet    OpKind = "hw.array_get"
	KindArraySlice  OpKind = "hw.array_slice"
	KindArrayConcat OpKind = "hw.array_concat"

	KindBitcast           OpKind = "hw.bitcast"
	KindAggregateConstant OpKind = "hw.aggregate_constant"
)

// Statement-level storage operations.
const (
	KindWire       OpKind = "sv.wire"
	KindReadInOut  OpKind = "sv.read_inout"
	KindConnect    OpKind = "sv.connect"
	KindIndexInOut OpKind = "sv.index_inout"
)

// Static-scheduling operations.
const (
	KindLatency OpKind = "pipeline.latency"
	KindStage   OpKind = "pipeline.stage"
)

// KnownKinds is the registry of every operation kind, used by the parser
// and verifier to reject unknown mnemonics.
var KnownKinds = map[OpKind]bool{
	KindAdd: true, KindSub: true, KindMul: true, KindDiv: true, KindRem: true,
	KindAnd: true, KindOr: true, KindXor: true,
	KindLeq: true, KindLt: true, KindGeq: true, KindGt: true, KindEq: true, KindNeq: true,
	KindCat: true, KindBits: true, KindHead: true, KindTail: true, KindPad: true,
	KindShl: true, KindShr: true, KindDshl: true, KindDshlw: true, KindDshr: true,
	KindMux: true,
	KindAsSInt: true, KindAsUInt: true, KindAsClock: true, KindAsAsyncReset: true,
	KindStdIntCast: true, KindAnalogInOutCast: true, KindAsPassive: true, KindAsNonPassive: true,
	KindSubfield: true, KindSubindex: true, KindSubaccess: true,
	KindConstant: true, KindInvalidValue: true,
	KindStructCreate: true, KindStructExtract: true, KindStructInject: true, KindStructExplode: true,
	KindArrayCreate: true, KindArrayGet: true, KindArraySlice: true, KindArrayConcat: true,
	KindBitcast: true, KindAggregateConstant: true,
	KindWire: true, KindReadInOut: true, KindConnect: true, KindIndexInOut: true,
	KindLatency: true, KindStage: true,
}

// DialectOf returns the dialect prefix of a kind.
func (k OpKind) DialectOf() Dialect {
	if i := strings.IndexByte(string(k), '.'); i >= 0 {
		return Dialect(k[:i])
	}
	return Dialect(k)
}

// Mnemonic returns the kind's name without the dialect prefix.
func (k OpKind) Mnemonic() string {
	if i := strings.IndexByte(string(k), '.'); i >= 0 {
		return string(k[i+1:])
	}
	return string(k)
}
