package renderer

// Serializer 定义 DSL 渲染接口，使用泛型约束文档类型。
// Implementations turn an intermediate document into native text and must
// not mutate it.
type Serializer[T any] interface {
	Serialize(doc T) (string, error)
}

// SerializerFunc adapts a plain function to Serializer.
type SerializerFunc[T any] func(doc T) (string, error)

// Serialize calls f(doc).
func (f SerializerFunc[T]) Serialize(doc T) (string, error) {
	return f(doc)
}
