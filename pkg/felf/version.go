package felf

// Version is the version of the container codec. It changes whenever the
// accepted layout or the ELF packing rules change.
const Version = "1.0.0"
