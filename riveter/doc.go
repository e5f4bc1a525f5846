// Package riveter layers classical inheritance, mixins and trait composition
// onto the prototype objects of package object.
//
// An Entity is a constructor: it owns a shared-member space (Statics), an
// instance-template space (Prototype) and a constructor body. Instances are
// objects whose prototype is the Entity's Prototype.
//
// Capabilities are attached to an Entity with Attach or Init:
//
//   - extend   derive a subtype: e.Extend(props, shared, opts...)
//   - inherits make e a subtype of parent: e.Inherits(parent, shared, opts...)
//   - mixin    blend donors into the prototype, existing members win
//   - punch    blend donors into the prototype, donors win
//   - compose  derive a subtype blending donors, with _preInit/_postInit
//     construction hooks run around the base constructor
//
// Extend and Inherits take the same arguments in opposite roles:
// Extend(ctor, props, ...) is Inherits(props, ctor, ...). Both orders are part
// of the public contract.
//
// Nothing here is synchronised. Entities and donors must not be composed
// from several goroutines at once.
package riveter
