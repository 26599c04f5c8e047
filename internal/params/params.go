package params

const (
	// MinSamples is the smallest number of ciphertexts either attack accepts.
	MinSamples = 2

	// MinExponent is the smallest public exponent a sample may carry.
	MinExponent = 3

	// CommonModulusSamples is the number of (exponent, ciphertext) pairs the
	// common modulus attack consumes. Additional samples are ignored.
	CommonModulusSamples = 2

	// DigestBytes is the length of request fingerprints.
	DigestBytes = 32
)
