package pvarray

// Arrays of each scalar type carried on the wire.
type (
	BooleanArray = Array[bool]
	ByteArray    = Array[int8]
	ShortArray   = Array[int16]
	IntArray     = Array[int32]
	LongArray    = Array[int64]
	FloatArray   = Array[float32]
	DoubleArray  = Array[float64]
)

// NewBooleanArray returns an empty BooleanArray.
func NewBooleanArray(name string) *BooleanArray { return New[bool](name) }

// NewByteArray returns an empty ByteArray.
func NewByteArray(name string) *ByteArray { return New[int8](name) }

// NewShortArray returns an empty ShortArray.
func NewShortArray(name string) *ShortArray { return New[int16](name) }

// NewIntArray returns an empty IntArray.
func NewIntArray(name string) *IntArray { return New[int32](name) }

// NewLongArray returns an empty LongArray.
func NewLongArray(name string) *LongArray { return New[int64](name) }

// NewFloatArray returns an empty FloatArray.
func NewFloatArray(name string) *FloatArray { return New[float32](name) }

// NewDoubleArray returns an empty DoubleArray.
func NewDoubleArray(name string) *DoubleArray { return New[float64](name) }
